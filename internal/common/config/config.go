package config

import (
	"os"
	"strconv"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string
	Environment  string
	ReadTimeout  int
	WriteTimeout int

	DBPath string

	// Настройки ядра редактора
	SnapStep         float64 // шаг сетки эскиза
	ClosureTolerance float64 // допуск замыкания пути
	CircleSegments   int     // N-gon аппроксимации круга
	DefaultDepth     float64 // глубина выдавливания по умолчанию
	PickRadius       float64 // радиус попадания по ребру
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "3000"),
		Environment:  getEnv("ENV", "development"),
		ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),

		DBPath: getEnv("EDITOR_DB_PATH", "data/db/scenes.db"),

		SnapStep:         getEnvAsFloat("SKETCH_SNAP_STEP", 0.5),
		ClosureTolerance: getEnvAsFloat("SKETCH_CLOSURE_TOLERANCE", 0.5),
		CircleSegments:   getEnvAsInt("SKETCH_CIRCLE_SEGMENTS", 24),
		DefaultDepth:     getEnvAsFloat("SKETCH_DEFAULT_DEPTH", 1.0),
		PickRadius:       getEnvAsFloat("PICK_RADIUS", 0.15),
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
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultVal
}
