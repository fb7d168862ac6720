package report

import (
	"context"
	"errors"
	"finspan/internal/logger"
	"fmt"
	"os"
	"path/filepath"
)

const DocumentName = "analysis.html"

type Renderer interface {
	Render(ctx context.Context, doc Document) (string, error)
}

type fileRendererHandler struct {
	OutDir string
}

// NewFileRenderer writes <metric>.png, <metric>.csv and analysis.html into outDir
func NewFileRenderer(outDir string) Renderer {
	return fileRendererHandler{
		OutDir: outDir,
	}
}

func (h fileRendererHandler) Render(ctx context.Context, doc Document) (string, error) {
	log := logger.FromContext(ctx)

	if err := os.MkdirAll(h.OutDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir %s: %w", h.OutDir, err)
	}

	charts := map[string]string{}
	for _, table := range doc.Tables {
		chartName := table.Metric.ID + ".png"
		err := writeFile(filepath.Join(h.OutDir, chartName), func(f *os.File) error {
			return RenderChart(f, table)
		})
		if errors.Is(err, ErrNoChartData) {
			log.Infow("skipping chart with no data", "metric", table.Metric.ID)
			os.Remove(filepath.Join(h.OutDir, chartName))
		} else if err != nil {
			return "", err
		} else {
			charts[table.Metric.ID] = "./" + chartName
		}

		err = writeFile(filepath.Join(h.OutDir, table.Metric.ID+".csv"), func(f *os.File) error {
			return WriteCsv(f, table)
		})
		if err != nil {
			return "", fmt.Errorf("failed to stage %s csv: %w", table.Metric.ID, err)
		}
	}

	documentPath := filepath.Join(h.OutDir, DocumentName)
	err := writeFile(documentPath, func(f *os.File) error {
		return WriteDocument(f, doc, charts)
	})
	if err != nil {
		return "", err
	}

	log.Infow("report written", "path", documentPath, "metrics", len(doc.Tables))

	return documentPath, nil
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
