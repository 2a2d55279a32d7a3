package config

import (
	"os"
	"strconv"
	"strings"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string
	Environment  string
	ReadTimeout  int
	WriteTimeout int
	LogLevel     string
	LogFormat    string
	CORSOrigins  []string
	Planner      PlannerConfig
}

// PlannerConfig параметры редактора планировки.
type PlannerConfig struct {
	BaseScale       float64 // пикселей на единицу комнаты при zoom 1.0
	RoomLength      float64
	RoomWidth       float64
	Unit            string
	TableSizes      []float64
	ContainerWidth  float64
	ContainerHeight float64
	ExportDir       string
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "3000"),
		Environment:  getEnv("ENV", "development"),
		ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "json"),
		CORSOrigins:  getEnvAsList("CORS_ORIGINS", []string{"*"}),
		Planner: PlannerConfig{
			BaseScale:       getEnvAsFloat("PLANNER_BASE_SCALE", 25),
			RoomLength:      getEnvAsFloat("PLANNER_ROOM_LENGTH", 20),
			RoomWidth:       getEnvAsFloat("PLANNER_ROOM_WIDTH", 15),
			Unit:            getEnv("PLANNER_UNIT", "ft"),
			TableSizes:      getEnvAsFloats("PLANNER_TABLE_SIZES", []float64{4, 6, 8, 10}),
			ContainerWidth:  getEnvAsFloat("PLANNER_CONTAINER_WIDTH", 1200),
			ContainerHeight: getEnvAsFloat("PLANNER_CONTAINER_HEIGHT", 800),
			ExportDir:       getEnv("PLANNER_EXPORT_DIR", "exports"),
		},
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil && f > 0 {
			return f
		}
	}
	return defaultVal
}

func getEnvAsList(key string, defaultVal []string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}

// getEnvAsFloats разбирает список через запятую; при любой ошибке возвращает default.
func getEnvAsFloats(key string, defaultVal []float64) []float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultVal
	}

	var out []float64
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f, err := strconv.ParseFloat(part, 64)
		if err != nil || f <= 0 {
			return defaultVal
		}
		out = append(out, f)
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
