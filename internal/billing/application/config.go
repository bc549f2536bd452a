package application

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config defines the notice batch configuration.
type Config struct {
	Pipeline        PipelineConfig `yaml:"pipeline"`
	Locale          string         `yaml:"locale"`
	DateLayout      string         `yaml:"date_layout"`
	OutputDir       string         `yaml:"output_dir"`
	Formats         []string       `yaml:"formats"`
	FilePrefix      string         `yaml:"file_prefix"`
	DatasetPath     string         `yaml:"dataset"`
	Period          string         `yaml:"period"`
	Accounts        []int          `yaml:"accounts"`
	PDFFontPath     string         `yaml:"pdf_font"`
	MetricsTextfile string         `yaml:"metrics_textfile"`
}

// LoadConfig reads the environment, then overlays BILLING_CONFIG when set.
func LoadConfig() (Config, error) {
	accounts, err := parseCodes(os.Getenv("BILLING_ACCOUNTS"))
	if err != nil {
		return Config{}, err
	}
	cfg := Config{
		Pipeline: PipelineConfig{
			DiscountThreshold: getenvFloatDefault("DISCOUNT_THRESHOLD", DefaultDiscountThreshold),
			DiscountPercent:   getenvFloatDefault("DISCOUNT_PERCENT", DefaultDiscountPercent),
		},
		Locale:          getenvDefault("BILLING_LOCALE", "ru"),
		DateLayout:      os.Getenv("BILLING_DATE_LAYOUT"),
		OutputDir:       getenvDefault("BILLING_OUTPUT_DIR", "."),
		Formats:         splitCSV(getenvDefault("BILLING_FORMATS", "xlsx")),
		FilePrefix:      os.Getenv("BILLING_FILE_PREFIX"),
		DatasetPath:     os.Getenv("BILLING_DATASET"),
		Period:          os.Getenv("BILLING_PERIOD"),
		Accounts:        accounts,
		PDFFontPath:     os.Getenv("BILLING_PDF_FONT"),
		MetricsTextfile: os.Getenv("METRICS_TEXTFILE"),
	}

	if path := os.Getenv("BILLING_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	if len(cfg.Formats) == 0 {
		return cfg, errors.New("billing config: at least one output format required")
	}
	if err := cfg.Pipeline.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvFloatDefault(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitCSV(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	var result []string
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}

func parseCodes(value string) ([]int, error) {
	var codes []int
	for _, part := range splitCSV(value) {
		code, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("billing config: invalid account code %q", part)
		}
		codes = append(codes, code)
	}
	return codes, nil
}
