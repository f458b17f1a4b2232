package config

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// GzipSharedConfig contiene la configuración para el módulo compartido de compresión
type GzipSharedConfig struct {
	EnableGzip        bool
	CompressionLevel  int
	AlwaysDecompress  bool // Acepta cuerpos de request con Content-Encoding: gzip
	GzipExcludedPaths []string
}

// DefaultSharedConfig devuelve una configuración por defecto
func DefaultSharedConfig() GzipSharedConfig {
	return GzipSharedConfig{
		EnableGzip:        true,
		CompressionLevel:  gzip.DefaultCompression,
		AlwaysDecompress:  true,
		GzipExcludedPaths: []string{"/health", "/metrics"},
	}
}

// SetupSharedMiddleware configura los middlewares compartidos
func SetupSharedMiddleware(router *gin.Engine, config GzipSharedConfig) {
	if !config.EnableGzip {
		return
	}

	opts := []gzip.Option{gzip.WithExcludedPaths(config.GzipExcludedPaths)}
	if config.AlwaysDecompress {
		opts = append(opts, gzip.WithDecompressFn(gzip.DefaultDecompressHandle))
	}

	router.Use(gzip.Gzip(config.CompressionLevel, opts...))
}
