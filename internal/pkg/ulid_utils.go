package pkg

import (
	"errors"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	ErrEmptyULID   = errors.New("ULID vazio")
	ErrInvalidULID = errors.New("formato de ULID inválido")
)

func GenerateULIDObject() ulid.ULID {
	return ulid.Make()
}

// ParseULID aceita o texto com espaços nas pontas e em minúsculas.
func ParseULID(raw string) (ulid.ULID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ulid.ULID{}, ErrEmptyULID
	}

	parsed, err := ulid.ParseStrict(strings.ToUpper(raw))
	if err != nil {
		return ulid.ULID{}, ErrInvalidULID
	}
	return parsed, nil
}

// ParseOptionalULID devolve nil para ponteiro nil ou texto vazio.
func ParseOptionalULID(raw *string) (*ulid.ULID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	parsed, err := ParseULID(*raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// SetTimestamps devolve o instante atual em UTC com precisão de microssegundos,
// a mesma que o postgres guarda.
func SetTimestamps() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
