// One-shot pipeline run from the command line: parse a request given as text
// and/or an image file, print the JSON result to stdout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/appointly/scheduler-assistant/internal/common"
	"github.com/appointly/scheduler-assistant/internal/extract"
	"github.com/appointly/scheduler-assistant/internal/llm/gemini"
)

func main() {
	text := flag.String("text", "", "free-form appointment request")
	imagePath := flag.String("image", "", "path to an image of the request")
	flag.Parse()

	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	var imageBytes []byte
	var mediaType string
	if *imagePath != "" {
		b, err := os.ReadFile(*imagePath)
		if err != nil {
			logger.Error("read image", "path", *imagePath, "error", err)
			os.Exit(1)
		}
		imageBytes = b
		mediaType = mediaTypeFor(*imagePath)
	}

	in, err := extract.NewRawInput(*text, imageBytes, mediaType)
	if err != nil {
		logger.Error("usage: parse -text <request> and/or -image <path>", "error", err)
		os.Exit(2)
	}

	backend := gemini.NewClient(gemini.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)
	pipeline := extract.NewPipeline(logger, cfg.Extract.Timezone, backend, nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.LLM.Timeout)
	defer cancel()

	res, err := pipeline.Run(ctx, in)
	if err != nil {
		logger.Error("extraction failed", "error", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		logger.Error("encode result", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

func mediaTypeFor(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if mt := mime.TypeByExtension(ext); mt != "" {
		return mt
	}
	switch strings.TrimPrefix(ext, ".") {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	default:
		return "application/octet-stream"
	}
}
