package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"git.sr.ht/~flobar/a11yeval/pkg/a11yeval/ratings"
	"github.com/BurntSushi/toml"
)

// Config defines the command's configuration.
type Config struct {
	Truth     string            `json:"truth,omitempty"`
	Objects   string            `json:"objects,omitempty"`
	Layout    string            `json:"layout,omitempty"`
	Average   string            `json:"average,omitempty"`
	Jobs      int               `json:"jobs"`
	Models    map[string]string `json:"models"`
	Ratings   RatingsConfig     `json:"ratings"`
	Deviation DeviationConfig   `json:"deviation"`
	Plot      PlotConfig        `json:"plot"`
}

// RatingsConfig holds the settings of the ratings command.
type RatingsConfig struct {
	Columns ratings.Columns    `json:"columns"`
	Exclude []string           `json:"exclude"`
	Order   []string           `json:"order"`
	F1      map[string]float64 `json:"f1"`
	Group   int                `json:"group"`
	Lower   float64            `json:"lower"`
	Upper   float64            `json:"upper"`
	YMin    float64            `json:"ymin"`
	YMax    float64            `json:"ymax"`
	Center  bool               `json:"center"`
	Gray    bool               `json:"gray"`
}

// DeviationConfig holds the settings of the deviation command.
type DeviationConfig struct {
	Order     []string `json:"order"`
	Expertise []string `json:"expertise"` // expert and non-expert level
	Separator float64  `json:"separator"`
	Alpha     float64  `json:"alpha"`
}

// PlotConfig defines the size of the plots in inches.
type PlotConfig struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// UpdateInConfig updates the value in dest with val if the according
// value is not the zero-type for the underlying type.  Dest must be a
// pointer type to either string, int, float64, bool or []string.
// Otherwise the function panics.
func UpdateInConfig(dest, val interface{}) {
	switch dest.(type) {
	case *string:
		v := val.(string)
		if v != "" {
			(*dest.(*string)) = v
		}
	case *int:
		v := val.(int)
		if v != 0 {
			(*dest.(*int)) = v
		}
	case *float64:
		v := val.(float64)
		if v != 0 {
			(*dest.(*float64)) = v
		}
	case *bool:
		v := val.(bool)
		if v {
			(*dest.(*bool)) = v
		}
	case *[]string:
		v := val.([]string)
		if len(v) > 0 {
			(*dest.(*[]string)) = v
		}
	default:
		panic("bad type")
	}
}

// ReadConfig reads the config from a json or toml file.  If the name
// is empty, an empty configuration is returned.  If name has the
// prefix '{' and the suffix '}' the name is interpreted as a json
// string and parsed accordingly.  Missing settings are set to their
// defaults.
func ReadConfig(name string) (*Config, error) {
	var config Config
	if name == "" {
		config.defaults()
		return &config, nil
	}
	if strings.HasPrefix(name, "{") && strings.HasSuffix(name, "}") {
		r := strings.NewReader(name)
		if err := json.NewDecoder(r).Decode(&config); err != nil {
			return nil, fmt.Errorf("readConfig %s: %v", name, err)
		}
		config.defaults()
		return &config, nil
	}
	is, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("readConfig %s: %v", name, err)
	}
	defer is.Close()
	if strings.HasSuffix(name, ".toml") {
		if _, err := toml.DecodeReader(is, &config); err != nil {
			return nil, fmt.Errorf("readConfig %s: %v", name, err)
		}
		config.defaults()
		return &config, nil
	}
	if err := json.NewDecoder(is).Decode(&config); err != nil {
		return nil, fmt.Errorf("readConfig %s: %v", name, err)
	}
	config.defaults()
	return &config, nil
}

func (c *Config) defaults() {
	if c.Jobs <= 0 {
		c.Jobs = 1
	}
	if c.Plot.Width <= 0 {
		c.Plot.Width = 8
	}
	if c.Plot.Height <= 0 {
		c.Plot.Height = 4
	}
	if c.Deviation.Alpha <= 0 {
		c.Deviation.Alpha = .05
	}
	if len(c.Deviation.Expertise) == 0 {
		c.Deviation.Expertise = []string{Expert, NonExpert}
	}
}

// Expertise levels of the study participants.
const (
	Expert    = "Expert"
	NonExpert = "Non-Expert"
)
