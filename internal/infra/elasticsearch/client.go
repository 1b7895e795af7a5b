package elasticsearch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vidshare-go/internal/config"
	"vidshare-go/pkg/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"
)

// Index wraps the Elasticsearch client with the index naming of this service.
type Index struct {
	client     *elasticsearch.Client
	videoIndex string
}

// New connects to Elasticsearch and resolves index names from config.
func New(cfg *config.ElasticsearchConfig) (*Index, error) {
	hosts := make([]string, 0, len(cfg.Hosts))
	for _, h := range cfg.Hosts {
		h = strings.TrimSpace(h)
		if h != "" && !strings.HasPrefix(h, "http") {
			h = "http://" + h
		}
		hosts = append(hosts, h)
	}

	if len(hosts) == 0 {
		return nil, fmt.Errorf("elasticsearch hosts is empty")
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:     hosts,
		RetryOnStatus: []int{502, 503, 504},
		MaxRetries:    3,
		RetryBackoff:  func(i int) time.Duration { return time.Duration(i) * time.Second },
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := es.Ping(es.Ping.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to ping elasticsearch: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("elasticsearch ping failed: %s", resp.String())
	}

	videoIndex := cfg.Index["videos"]
	if videoIndex == "" {
		videoIndex = "videos"
	}

	logger.Info("Elasticsearch connected", zap.Strings("hosts", hosts))

	return &Index{client: es, videoIndex: videoIndex}, nil
}
