// Package config loads a simulation scenario from a YAML file into a typed
// Config: a single exported struct, a Load function, and field-level
// validation returning a config-kind error.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goblimey/nmeasim/vesseltemplate"
	"gopkg.in/yaml.v3"
)

// Config is the full parsed scenario.
type Config struct {
	Simulation          Simulation        `yaml:"simulation"`
	Vessels             []Vessel          `yaml:"vessels"`
	BaseStations        []BaseStation     `yaml:"base_stations"`
	AidsToNavigation    []AidToNavigation `yaml:"aids_to_navigation"`
	Sentences           []Sentence        `yaml:"sentences"`
	Outputs             []Output          `yaml:"outputs"`
	Report              Report            `yaml:"report"`
	VesselTemplatesPath string            `yaml:"vessel_templates_path"`
}

// Simulation holds the run's overall timing parameters.
type Simulation struct {
	DurationSeconds float64 `yaml:"duration_seconds"`
	TimeFactor      float64 `yaml:"time_factor"`
	StartTime       string  `yaml:"start_time"` // RFC 3339; empty means "now"
}

// Position is a decimal-degree lat/lon pair as it appears in scenario YAML.
type Position struct {
	Lat float64 `yaml:"lat"`
	Lon float64 `yaml:"lon"`
}

// Dimensions mirrors ais.Dimensions in scenario-file form.
type Dimensions struct {
	ToBow       uint16 `yaml:"to_bow"`
	ToStern     uint16 `yaml:"to_stern"`
	ToPort      uint8  `yaml:"to_port"`
	ToStarboard uint8  `yaml:"to_starboard"`
}

// Box bounds a random_walk vessel's excursion.
type Box struct {
	MinLat float64 `yaml:"min_lat"`
	MaxLat float64 `yaml:"max_lat"`
	MinLon float64 `yaml:"min_lon"`
	MaxLon float64 `yaml:"max_lon"`
}

// Movement configures a vessel's steering pattern.
type Movement struct {
	Pattern     string     `yaml:"pattern"` // linear|circular|random_walk|waypoint
	Center      *Position  `yaml:"center,omitempty"`
	RadiusNM    float64    `yaml:"radius_nm,omitempty"`
	Box         *Box       `yaml:"box,omitempty"`
	Waypoints   []Position `yaml:"waypoints,omitempty"`
	ToleranceNM float64    `yaml:"tolerance_nm,omitempty"`
}

// Voyage is a vessel's optional destination/ETA/draught block.
type Voyage struct {
	Destination string `yaml:"destination"`
	DraughtM    float64 `yaml:"draught"`
	ETAMonth    uint8  `yaml:"eta_month"`
	ETADay      uint8  `yaml:"eta_day"`
	ETAHour     uint8  `yaml:"eta_hour"`
	ETAMinute   uint8  `yaml:"eta_minute"`
}

// Vessel is one scenario vessel entry. Template, if set, is looked up in
// vesseltemplate to pre-fill ShipType/Dimensions when the corresponding
// field is left zero. Class is not taken from the template: it is always
// required on the entry itself.
type Vessel struct {
	MMSI            uint32    `yaml:"mmsi"`
	Name            string    `yaml:"name"`
	Callsign        string    `yaml:"callsign"`
	Template        string    `yaml:"template,omitempty"`
	Class           string    `yaml:"class"` // "A" or "B"
	ShipType        uint8     `yaml:"ship_type"`
	Position        Position  `yaml:"position"`
	InitialSpeed    float64   `yaml:"initial_speed"`
	InitialHeading  float64   `yaml:"initial_heading"`
	Dimensions      Dimensions `yaml:"dimensions"`
	Movement        Movement  `yaml:"movement"`
	VoyageData      *Voyage   `yaml:"voyage_data,omitempty"`
	ExtendedReports bool      `yaml:"extended_reports,omitempty"`
}

// BaseStation is one scenario base station entry.
type BaseStation struct {
	MMSI     uint32   `yaml:"mmsi"`
	Position Position `yaml:"position"`
	EPFD     uint8    `yaml:"epfd"`
}

// AidToNavigation is one scenario aid-to-navigation entry.
type AidToNavigation struct {
	MMSI          uint32     `yaml:"mmsi"`
	AidType       uint8      `yaml:"aid_type"`
	Name          string     `yaml:"name"`
	Position      Position   `yaml:"position"`
	Dimensions    Dimensions `yaml:"dimensions"`
	EPFD          uint8      `yaml:"epfd"`
	OffPosition   bool       `yaml:"off_position"`
	VirtualAid    bool       `yaml:"virtual_aid"`
	Assigned      bool       `yaml:"assigned"`
	NameExtension string     `yaml:"name_extension"`
}

// Sentence configures one GPS sentence type, applied to every vessel.
type Sentence struct {
	Type     string  `yaml:"type"` // GGA|RMC
	TalkerID string  `yaml:"talker_id"`
	RateHz   float64 `yaml:"rate_hz"`
	Enabled  bool    `yaml:"enabled"`
}

// Output is one discriminated sink configuration.
type Output struct {
	Type string `yaml:"type"` // file|tcp|udp|serial

	// file
	Path           string `yaml:"path,omitempty"`
	RotationSizeMB int    `yaml:"rotation_size_mb,omitempty"`
	MaxFiles       int    `yaml:"max_files,omitempty"`
	AutoFlush      bool   `yaml:"auto_flush,omitempty"`
	LineEnding     string `yaml:"line_ending,omitempty"`
	RotateDaily    bool   `yaml:"rotate_daily,omitempty"`

	// tcp
	ListenAddr    string        `yaml:"listen_addr,omitempty"`
	MaxClients    int           `yaml:"max_clients,omitempty"`
	ClientTimeout time.Duration `yaml:"client_timeout,omitempty"`
	SendTimeout   time.Duration `yaml:"send_timeout,omitempty"`

	// udp
	Host      string `yaml:"host,omitempty"`
	Port      int    `yaml:"port,omitempty"`
	Broadcast bool   `yaml:"broadcast,omitempty"`

	// serial
	Device               string        `yaml:"device,omitempty"`
	Baud                 int           `yaml:"baud,omitempty"`
	DataBits             int           `yaml:"data_bits,omitempty"`
	Parity               string        `yaml:"parity,omitempty"`
	StopBits             float32       `yaml:"stop_bits,omitempty"`
	ReconnectDelay       time.Duration `yaml:"reconnect_delay,omitempty"`
	MaxReconnectAttempts int           `yaml:"max_reconnect_attempts,omitempty"`
	SendInterval         time.Duration `yaml:"send_interval,omitempty"`
}

// Report configures the optional HTTP status feed.
type Report struct {
	Enabled    bool   `yaml:"enabled"`
	ListenAddr string `yaml:"listen_addr"`
	History    int    `yaml:"history"`
}

// Load reads and parses the scenario file at path, then validates it.
// A malformed or out-of-range configuration is a "config" error: fatal at
// startup.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	seenMMSI := make(map[uint32]bool)
	for _, v := range c.Vessels {
		if v.MMSI == 0 || v.MMSI > 999999999 {
			return fmt.Errorf("config: vessel %q: mmsi %d out of range", v.Name, v.MMSI)
		}
		if seenMMSI[v.MMSI] {
			return fmt.Errorf("config: duplicate mmsi %d", v.MMSI)
		}
		seenMMSI[v.MMSI] = true
		if v.Class != "A" && v.Class != "B" {
			return fmt.Errorf("config: vessel %q: class must be \"A\" or \"B\", got %q", v.Name, v.Class)
		}
		if v.Template != "" {
			if _, ok := vesseltemplate.Lookup(v.Template); !ok {
				return fmt.Errorf("config: vessel %q: unknown template %q", v.Name, v.Template)
			}
		}
		switch v.Movement.Pattern {
		case "", "linear", "circular", "random_walk", "waypoint":
		default:
			return fmt.Errorf("config: vessel %q: unknown movement pattern %q", v.Name, v.Movement.Pattern)
		}
	}
	for _, b := range c.BaseStations {
		if seenMMSI[b.MMSI] {
			return fmt.Errorf("config: duplicate mmsi %d", b.MMSI)
		}
		seenMMSI[b.MMSI] = true
	}
	for _, a := range c.AidsToNavigation {
		if seenMMSI[a.MMSI] {
			return fmt.Errorf("config: duplicate mmsi %d", a.MMSI)
		}
		seenMMSI[a.MMSI] = true
	}
	for _, s := range c.Sentences {
		if s.Type != "GGA" && s.Type != "RMC" {
			return fmt.Errorf("config: sentence: type must be GGA or RMC, got %q", s.Type)
		}
	}
	for _, o := range c.Outputs {
		switch o.Type {
		case "file", "tcp", "udp", "serial":
		default:
			return fmt.Errorf("config: output: unknown type %q", o.Type)
		}
	}
	return nil
}
