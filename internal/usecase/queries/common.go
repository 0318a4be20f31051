package queries

import (
	"context"

	"therapy-booking/internal/infra"
	"therapy-booking/internal/pkg/errs"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("therapy-booking/usecase/queries")

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func lookupErr(err error, what string) error {
	if errs.Is(err, errs.ErrForbidden) {
		return err
	}
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(errs.Wrap(err, what+" not found"), errs.ErrNotFound)
	}
	return errs.Mark(errs.Wrap(err, "failed to load "+what), errs.ErrDatabaseOperationFailed)
}
