package logging

import (
	"context"
	"strings"

	"github.com/goliatone/travel-cms/pkg/interfaces"
)

const (
	rootModule      = "travel"
	pagesModule     = "travel.pages"
	importerModule  = "travel.importer"
	composeModule   = "travel.compose"
	enrichModule    = "travel.enrich"
	generatorModule = "travel.generator"
)

const (
	fieldImportProfile = "import_profile"
	fieldNodeSlug      = "slug"
	fieldNodeKind      = "kind"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// PagesLogger returns the logger namespace reserved for the page tree service.
func PagesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, pagesModule)
}

// ImporterLogger returns the logger namespace reserved for legacy HTML imports.
func ImporterLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, importerModule)
}

// ComposeLogger returns the logger namespace reserved for body composition.
func ComposeLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, composeModule)
}

// EnrichLogger returns the logger namespace reserved for context enrichment.
func EnrichLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, enrichModule)
}

// GeneratorLogger returns the logger namespace reserved for sitemap/feed output.
func GeneratorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, generatorModule)
}

// WithNodeContext enriches the provided logger with the node fields shared by
// page operations. Empty values are ignored.
func WithNodeContext(logger interfaces.Logger, kind, slug string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(kind); trimmed != "" {
		fields[fieldNodeKind] = trimmed
	}
	if trimmed := strings.TrimSpace(slug); trimmed != "" {
		fields[fieldNodeSlug] = trimmed
	}
	return WithFields(logger, fields)
}

// WithImportContext annotates importer log entries with the active profile.
func WithImportContext(logger interfaces.Logger, profile string) interfaces.Logger {
	if strings.TrimSpace(profile) == "" {
		return logger
	}
	return WithFields(logger, map[string]any{fieldImportProfile: profile})
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
