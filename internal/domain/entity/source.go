package entity

import "fmt"

// Source identifies the origin site of an article. The set is extensible;
// two members are currently configured.
type Source string

const (
	// SourceInformburo is the informburo.kz news listing.
	SourceInformburo Source = "informburo"

	// SourceNur is the nur.kz latest-news listing.
	SourceNur Source = "nur"
)

// Sources lists all known sources in their fixed ingestion order.
func Sources() []Source {
	return []Source{SourceInformburo, SourceNur}
}

// ParseSource converts a string into a known Source.
// It returns an error for unknown values so that callers never construct
// an out-of-set source from untrusted token input.
func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case SourceInformburo, SourceNur:
		return Source(s), nil
	}
	return "", fmt.Errorf("%w: unknown source %q", ErrInvalidInput, s)
}

// Host returns the public site host for display in captions.
func (s Source) Host() string {
	switch s {
	case SourceInformburo:
		return "informburo.kz"
	case SourceNur:
		return "nur.kz"
	}
	return string(s)
}

// String implements fmt.Stringer.
func (s Source) String() string { return string(s) }

// Valid reports whether the source is a member of the known set.
func (s Source) Valid() bool {
	_, err := ParseSource(string(s))
	return err == nil
}
