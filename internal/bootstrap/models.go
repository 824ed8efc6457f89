package bootstrap

import (
	"context"
	"fmt"

	"github.com/camel-tools-api/camel-api/internal/analysis/service"
	"github.com/camel-tools-api/camel-api/internal/nlp/disambig"
	"github.com/camel-tools-api/camel-api/internal/nlp/morphology"
)

// LoadToolkit opens the lexicon at path and builds the toolkit over it. An
// empty path uses the pretrained models. The lexicon is returned for health
// reporting and cache namespacing.
func LoadToolkit(ctx context.Context, path string) (service.Toolkit, *morphology.DB, error) {
	var mle *disambig.MLEDisambiguator
	if path == "" {
		pretrained, err := disambig.Pretrained()
		if err != nil {
			return service.Toolkit{}, nil, fmt.Errorf("load pretrained models: %w", err)
		}
		mle = pretrained
	} else {
		db, err := morphology.Open(ctx, path)
		if err != nil {
			return service.Toolkit{}, nil, fmt.Errorf("load morphology db: %w", err)
		}
		mle = disambig.NewMLEDisambiguator(morphology.NewAnalyzer(db))
	}

	tk, err := service.NewToolkitWith(mle)
	if err != nil {
		return service.Toolkit{}, nil, fmt.Errorf("build toolkit: %w", err)
	}

	return tk, mle.Analyzer().DB(), nil
}

// CacheNamespace scopes cached outputs to the build and the lexicon content,
// so a shared Redis never serves outputs computed by other models.
func CacheNamespace(version string, db *morphology.DB) string {
	if version == "" {
		version = "dev"
	}
	return version + ":" + db.Fingerprint()
}
