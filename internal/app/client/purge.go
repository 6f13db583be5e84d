package client

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"

	"parsedash/internal/domain/object"
	"parsedash/internal/domain/query"
	"parsedash/internal/domain/schema"
)

type purgeAPI interface {
	DeleteSchema(ctx context.Context, className string) error
	ListObjects(ctx context.Context, className string, s *schema.Schema, query string) ([]*object.Object, error)
	DeleteObject(ctx context.Context, className, id string) error
}

// PurgeReport - итог удаления класса
type PurgeReport struct {
	ClassName     string
	Initial       int
	DeleteCalls   int64
	Failed        int
	SchemaDeleted bool
}

// PurgeJob удаляет класс. Непустой класс при Force сначала очищается:
// все объекты удаляются пулом воркеров, и только после завершения всех
// удалений повторяется удаление схемы.
type PurgeJob struct {
	api         purgeAPI
	log         *slog.Logger
	Concurrency int
	PageSize    int
	Force       bool
	// OnProgress вызывается после каждого удаления с числом оставшихся объектов
	OnProgress func(remaining int64)
}

func newPurgeJob(api purgeAPI, log *slog.Logger, concurrency, pageSize int) *PurgeJob {
	if concurrency <= 0 {
		concurrency = 1
	}
	if pageSize <= 0 {
		pageSize = 100
	}
	return &PurgeJob{
		api:         api,
		log:         log.With(slog.String("component", "purge")),
		Concurrency: concurrency,
		PageSize:    pageSize,
	}
}

func (j *PurgeJob) Run(ctx context.Context, className string) (*PurgeReport, error) {
	report := &PurgeReport{ClassName: className}

	err := j.api.DeleteSchema(ctx, className)
	if err == nil {
		report.SchemaDeleted = true
		return report, nil
	}
	if !IsCode(err, CodeClassNotEmpty) || !j.Force {
		return report, err
	}

	j.log.Info("Класс не пуст, удаляем объекты", slog.String("class", className))

	ids, err := j.collectIDs(ctx, className)
	if err != nil {
		return report, fmt.Errorf("ошибка получения объектов: %w", err)
	}
	report.Initial = len(ids)

	if err := j.deleteAll(ctx, className, ids, report); err != nil {
		return report, err
	}

	if err := j.api.DeleteSchema(ctx, className); err != nil {
		return report, err
	}
	report.SchemaDeleted = true

	j.log.Info("Класс удален",
		slog.String("class", className),
		slog.Int("objects", report.Initial),
	)
	return report, nil
}

// collectIDs постранично читает id всех объектов класса
func (j *PurgeJob) collectIDs(ctx context.Context, className string) ([]string, error) {
	var ids []string
	for {
		b := query.NewBuilder(nil)
		if err := b.Limit(j.PageSize); err != nil {
			return nil, err
		}
		if err := b.Skip(len(ids)); err != nil {
			return nil, err
		}
		if err := b.OrderBy(schema.FieldObjectID, query.Ascending); err != nil {
			return nil, err
		}

		page, err := j.api.ListObjects(ctx, className, nil, b.Encode()+"&keys="+schema.FieldObjectID)
		if err != nil {
			return nil, err
		}
		// сервер может урезать limit до своего maxLimit, поэтому конец - только пустая страница
		if len(page) == 0 {
			return ids, nil
		}
		for _, obj := range page {
			ids = append(ids, obj.ID)
		}
	}
}

// deleteAll дожидается завершения всех удалений. Ошибки копятся и
// не прерывают остальные удаления.
func (j *PurgeJob) deleteAll(ctx context.Context, className string, ids []string, report *PurgeReport) error {
	var (
		g         errgroup.Group
		mu        sync.Mutex
		errs      *multierror.Error
		remaining = int64(len(ids))
		calls     atomic.Int64
	)
	g.SetLimit(j.Concurrency)

	for _, id := range ids {
		g.Go(func() error {
			calls.Add(1)
			err := j.api.DeleteObject(ctx, className, id)
			if err != nil {
				mu.Lock()
				errs = multierror.Append(errs, fmt.Errorf("%s: %w", id, err))
				mu.Unlock()
			}

			left := atomic.AddInt64(&remaining, -1)
			if j.OnProgress != nil {
				j.OnProgress(left)
			}
			return nil
		})
	}
	_ = g.Wait()

	report.DeleteCalls = calls.Load()
	if errs != nil {
		report.Failed = len(errs.Errors)
		j.log.Warn("Не все объекты удалены", slog.String("class", className), slog.Int("failed", report.Failed))
		return errs.ErrorOrNil()
	}
	return nil
}
