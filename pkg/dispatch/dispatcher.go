package dispatch

import (
	"context"
	"log/slog"
	"time"

	"compliance_tui/pkg/config"
	"compliance_tui/pkg/response"
)

// Dispatcher wraps a Responder with validation, error classification and
// logging. Every successful result it returns has passed response.Validate.
type Dispatcher struct {
	info      ResponderInfo
	responder Responder
	logger    *slog.Logger
}

// NewDispatcher wraps responder. A nil logger uses slog.Default.
func NewDispatcher(info ResponderInfo, responder Responder, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{info: info, responder: responder, logger: logger}
}

// NewFromConfig builds the dispatcher for cfg.Responder using the default registry.
func NewFromConfig(cfg config.Config, logger *slog.Logger) (*Dispatcher, error) {
	responder, info, err := DefaultRegistry.New(ResponderType(cfg.Responder), cfg)
	if err != nil {
		return nil, err
	}
	return NewDispatcher(info, responder, logger), nil
}

// Info describes the wrapped responder.
func (d *Dispatcher) Info() ResponderInfo { return d.info }

// Name returns the display name of the wrapped responder.
func (d *Dispatcher) Name() string {
	if d.info.Name != "" {
		return d.info.Name
	}
	return string(d.info.Type)
}

// Respond forwards to the wrapped responder. Failures are returned as *Error;
// payloads that fail validation become ErrMalformed.
func (d *Dispatcher) Respond(ctx context.Context, query string) (response.Structured, error) {
	start := time.Now()
	d.logger.Debug("dispatch_start", "responder", d.info.Type, "query_len", len(query))

	res, err := d.responder.Respond(ctx, query)
	if err != nil {
		de := classify(ctx, err)
		d.logger.Warn("dispatch_failed",
			"responder", d.info.Type,
			"kind", de.Kind,
			"status", de.Status,
			"error", de.Error(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return response.Structured{}, de
	}

	if verr := response.Validate(res); verr != nil {
		d.logger.Warn("dispatch_malformed", "responder", d.info.Type, "error", verr)
		return response.Structured{}, &Error{
			Kind:    ErrMalformed,
			Message: "responder returned an invalid payload",
			Err:     verr,
		}
	}

	d.logger.Info("dispatch_done",
		"responder", d.info.Type,
		"type", res.Kind,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}
