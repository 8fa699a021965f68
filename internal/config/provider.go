package config

import (
	"strings"
	"sync/atomic"
)

// ProviderSettings identifies which language model endpoint to call and how.
type ProviderSettings struct {
	Provider string
	BaseURL  string
	APIToken string
	Model    string
}

// ProviderOverrides are optional per-request replacements for the
// process-wide settings. Empty fields are ignored.
type ProviderOverrides struct {
	BaseURL  string
	APIToken string
	Model    string
}

// IsEmpty reports whether no override is set.
func (o ProviderOverrides) IsEmpty() bool {
	return o.BaseURL == "" && o.APIToken == "" && o.Model == ""
}

// Merge returns s with every non-empty override applied.
func (s ProviderSettings) Merge(o ProviderOverrides) ProviderSettings {
	if v := strings.TrimSpace(o.BaseURL); v != "" {
		s.BaseURL = v
	}
	if v := strings.TrimSpace(o.APIToken); v != "" {
		s.APIToken = v
	}
	if v := strings.TrimSpace(o.Model); v != "" {
		s.Model = v
	}
	return s
}

// TokenConfigured reports whether an API token is present.
func (s ProviderSettings) TokenConfigured() bool {
	return s.APIToken != ""
}

// ProviderHolder holds the current ProviderSettings for the process.
// Updates replace the whole snapshot, so a reader never observes a mix of
// old and new fields.
type ProviderHolder struct {
	current atomic.Pointer[ProviderSettings]
}

// NewProviderHolder returns a holder seeded with initial.
func NewProviderHolder(initial ProviderSettings) *ProviderHolder {
	h := &ProviderHolder{}
	h.current.Store(&initial)
	return h
}

// Get returns a copy of the current snapshot.
func (h *ProviderHolder) Get() ProviderSettings {
	return *h.current.Load()
}

// Set replaces the snapshot.
func (h *ProviderHolder) Set(s ProviderSettings) {
	h.current.Store(&s)
}

// Update atomically applies fn to the current snapshot and stores the
// result. fn may be called more than once under contention.
func (h *ProviderHolder) Update(fn func(ProviderSettings) ProviderSettings) ProviderSettings {
	for {
		old := h.current.Load()
		next := fn(*old)
		if h.current.CompareAndSwap(old, &next) {
			return next
		}
	}
}

// SetToken replaces only the API token.
func (h *ProviderHolder) SetToken(token string) ProviderSettings {
	return h.Update(func(s ProviderSettings) ProviderSettings {
		s.APIToken = token
		return s
	})
}
