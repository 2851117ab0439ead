package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"nyc_rent_dashboard/internal/adapters/observability"
	"nyc_rent_dashboard/internal/charts"
	"nyc_rent_dashboard/internal/domain"
)

var ErrUnknownCallback = errors.New("unknown callback input")

// Callback maps one dropdown to the graphs it redraws. Fn returns one
// descriptor per output, in Outputs order.
type Callback struct {
	Input   string
	Outputs []string
	Fn      func(selected []string) []charts.Descriptor
}

type Registry struct {
	byInput map[string]Callback
	inputs  []string
}

func NewRegistry(cbs ...Callback) *Registry {
	r := &Registry{byInput: make(map[string]Callback, len(cbs))}
	for _, cb := range cbs {
		if _, dup := r.byInput[cb.Input]; !dup {
			r.inputs = append(r.inputs, cb.Input)
		}
		r.byInput[cb.Input] = cb
	}
	return r
}

// Inputs lists the registered input ids in registration order.
func (r *Registry) Inputs() []string { return append([]string(nil), r.inputs...) }

func (r *Registry) Lookup(input string) (Callback, bool) {
	cb, ok := r.byInput[input]
	return cb, ok
}

// Dispatch runs the callback bound to input synchronously.
func (r *Registry) Dispatch(input string, selected []string) (map[string]charts.Descriptor, error) {
	cb, ok := r.byInput[input]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCallback, input)
	}
	descs := cb.Fn(selected)
	if len(descs) != len(cb.Outputs) {
		return nil, fmt.Errorf("callback %q returned %d charts for %d outputs", input, len(descs), len(cb.Outputs))
	}
	out := make(map[string]charts.Descriptor, len(descs))
	for i, id := range cb.Outputs {
		out[id] = descs[i]
	}
	return out, nil
}

// CallbackService dispatches callbacks and memoizes the rendered figures.
type CallbackService struct {
	reg      *Registry
	cache    domain.Cache
	cacheTTL time.Duration
}

// NewCallbackService accepts a nil cache, which disables memoization.
func NewCallbackService(reg *Registry, c domain.Cache, ttl time.Duration) *CallbackService {
	return &CallbackService{reg: reg, cache: c, cacheTTL: ttl}
}

func (s *CallbackService) Dispatch(ctx context.Context, input string, selected []string) (map[string]charts.Figure, error) {
	if _, ok := s.reg.Lookup(input); !ok {
		observability.ObserveCallback(input, "unknown")
		return nil, fmt.Errorf("%w: %q", ErrUnknownCallback, input)
	}

	key := CacheKey(input, selected)
	var out map[string]charts.Figure
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &out); ok {
			observability.ObserveCallback(input, "cached")
			return out, nil
		}
	}

	descs, err := s.reg.Dispatch(input, selected)
	if err != nil {
		observability.ObserveCallback(input, "error")
		return nil, err
	}
	out = make(map[string]charts.Figure, len(descs))
	for id, d := range descs {
		out[id] = d.Plotly()
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	}
	observability.ObserveCallback(input, "ok")
	return out, nil
}

// CacheKey is order-insensitive and ignores duplicate selections. Values are
// JSON-encoded so a value containing a separator cannot alias a longer selection.
func CacheKey(input string, selected []string) string {
	set := make(map[string]struct{}, len(selected))
	vals := make([]string, 0, len(selected))
	for _, v := range selected {
		if _, ok := set[v]; ok {
			continue
		}
		set[v] = struct{}{}
		vals = append(vals, v)
	}
	sort.Strings(vals)
	enc, _ := json.Marshal(vals) // a []string always encodes
	return fmt.Sprintf("callback:%s:%s", input, enc)
}
