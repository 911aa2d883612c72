package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// OwnerKind - вариант ссылки на владельца объекта.
type OwnerKind int

const (
	OwnerUnset      OwnerKind = iota
	OwnerUnresolved           // бэкенд прислал только идентификатор
	OwnerResolved             // бэкенд прислал вложенную карточку владельца
)

// OwnerSummary - краткая информация о владельце, которую бэкенд подставляет при populate.
type OwnerSummary struct {
	ID            string `json:"_id,omitempty"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`
	UserType      string `json:"userType,omitempty"`
	LicenseNumber string `json:"licenseNumber,omitempty"` // CRECI для корретора
}

// OwnerRef - поле ownerId, которое приходит либо строкой, либо объектом.
// Потребители разбирают его через Kind, а не проверкой типа на месте.
type OwnerRef struct {
	kind    OwnerKind
	id      string
	summary OwnerSummary
}

func UnresolvedOwner(id string) OwnerRef {
	return OwnerRef{kind: OwnerUnresolved, id: id}
}

func ResolvedOwner(summary OwnerSummary) OwnerRef {
	return OwnerRef{kind: OwnerResolved, id: summary.ID, summary: summary}
}

func (o OwnerRef) Kind() OwnerKind { return o.kind }

// ID возвращает идентификатор владельца для обоих вариантов.
func (o OwnerRef) ID() string { return o.id }

// Summary возвращает карточку владельца, если она была подставлена бэкендом.
func (o OwnerRef) Summary() (OwnerSummary, bool) {
	if o.kind != OwnerResolved {
		return OwnerSummary{}, false
	}
	return o.summary, true
}

func (o *OwnerRef) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*o = OwnerRef{}
		return nil
	}

	switch trimmed[0] {
	case '"':
		var id string
		if err := json.Unmarshal(trimmed, &id); err != nil {
			return fmt.Errorf("ownerId: %w", err)
		}
		if id == "" {
			*o = OwnerRef{}
			return nil
		}
		*o = UnresolvedOwner(id)
		return nil
	case '{':
		// Бэкенд может алиасить _id в id и во вложенных документах
		var raw struct {
			OwnerSummary
			AliasID string `json:"id"`
		}
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return fmt.Errorf("ownerId: %w", err)
		}
		summary := raw.OwnerSummary
		if summary.ID == "" {
			summary.ID = raw.AliasID
		}
		*o = ResolvedOwner(summary)
		return nil
	default:
		return fmt.Errorf("ownerId: unsupported JSON value %s", string(trimmed))
	}
}

func (o OwnerRef) MarshalJSON() ([]byte, error) {
	switch o.kind {
	case OwnerUnresolved:
		return json.Marshal(o.id)
	case OwnerResolved:
		return json.Marshal(o.summary)
	default:
		return []byte("null"), nil
	}
}
