package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	HTTPAddr string

	DBDriver string
	DBDSN    string

	AuthSecret string

	// BankPath points at the bundled exam_questions JSON document loaded at
	// startup. AssetBasePath holds image files for image-based questions.
	BankPath      string
	AssetBasePath string

	CORSOrigins []string

	// Scoring defaults; heuristic constants, overridable per deployment.
	KeywordWeight   float64
	JaccardWeight   float64
	MathWeight      float64
	LengthWeight    float64
	MinAnswerLength int
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		HTTPAddr:        addr,
		DBDriver:        envOr("DB_DRIVER", "sqlite"),
		DBDSN:           envOr("DB_DSN", ""),
		AuthSecret:      envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		BankPath:        envOr("BANK_PATH", "./data/exam_questions_combined.json"),
		AssetBasePath:   envOr("ASSET_BASE_PATH", "./data/assets"),
		CORSOrigins:     csvOr("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"),
		KeywordWeight:   envFloat("KEYWORD_WEIGHT", 0.4),
		JaccardWeight:   envFloat("JACCARD_WEIGHT", 0.3),
		MathWeight:      envFloat("MATH_WEIGHT", 0.2),
		LengthWeight:    envFloat("LENGTH_WEIGHT", 0.1),
		MinAnswerLength: envInt("MIN_ANSWER_LENGTH", 10),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(k)); err == nil {
		return v
	}
	return def
}

func envFloat(k string, def float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(k), 64); err == nil {
		return v
	}
	return def
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
