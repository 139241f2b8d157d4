package collections

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Lists and books decode record by record, so a malformed record is dropped
// alone and the rest of the collection survives.

func unmarshalOne[E any](data []byte) (E, []error, error) {
	var e E
	err := json.Unmarshal(data, &e)
	return e, nil, err
}

func isNull(data []byte) bool {
	return len(data) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

// salvageList decodes a JSON array with one, dropping elements it rejects.
func salvageList[E any](data []byte, one func([]byte) (E, []error, error)) ([]E, []error, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, nil, err
	}
	if raws == nil {
		return nil, nil, nil
	}
	out := make([]E, 0, len(raws))
	var dropped []error
	for i, raw := range raws {
		e, inner, err := one(raw)
		for _, d := range inner {
			dropped = append(dropped, fmt.Errorf("[%d]%w", i, d))
		}
		if err != nil {
			dropped = append(dropped, fmt.Errorf("[%d]: %w", i, err))
			continue
		}
		out = append(out, e)
	}
	return out, dropped, nil
}

// salvageBook decodes a JSON object keyed by date with one, dropping values it rejects.
func salvageBook[E any](data []byte, one func([]byte) (E, []error, error)) (map[string]E, []error, error) {
	var raws map[string]json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, nil, err
	}
	if raws == nil {
		return nil, nil, nil
	}
	out := make(map[string]E, len(raws))
	var dropped []error
	for day, raw := range raws {
		e, inner, err := one(raw)
		for _, d := range inner {
			dropped = append(dropped, fmt.Errorf("%s%w", day, d))
		}
		if err != nil {
			dropped = append(dropped, fmt.Errorf("%s: %w", day, err))
			continue
		}
		out[day] = e
	}
	return out, dropped, nil
}

// Salvage implements store.Salvager.
func (NoteList) Salvage(data []byte) (NoteList, []error, error) {
	return salvageList(data, unmarshalOne[Note])
}

// Salvage implements store.Salvager.
func (GoalList) Salvage(data []byte) (GoalList, []error, error) {
	return salvageList(data, unmarshalOne[Goal])
}

// Salvage implements store.Salvager. Malformed items are dropped without
// losing their checklist.
func (ChecklistList) Salvage(data []byte) (ChecklistList, []error, error) {
	return salvageList(data, salvageChecklist)
}

func salvageChecklist(data []byte) (Checklist, []error, error) {
	var fields struct {
		Checklist
		Items json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return Checklist{}, nil, err
	}
	c := fields.Checklist
	if isNull(fields.Items) {
		return c, nil, nil
	}
	items, dropped, err := salvageList(fields.Items, unmarshalOne[ChecklistItem])
	if err != nil {
		return Checklist{}, nil, fmt.Errorf("items: %w", err)
	}
	c.Items = items
	for i, d := range dropped {
		dropped[i] = fmt.Errorf(".items%w", d)
	}
	return c, dropped, nil
}

// Salvage implements store.Salvager. A malformed task is dropped from its day;
// a day that is not a list is dropped whole.
func (TaskBook) Salvage(data []byte) (TaskBook, []error, error) {
	return salvageBook(data, func(raw []byte) ([]Task, []error, error) {
		if isNull(raw) {
			return nil, nil, nil
		}
		return salvageList(raw, unmarshalOne[Task])
	})
}

// Salvage implements store.Salvager.
func (JournalBook) Salvage(data []byte) (JournalBook, []error, error) {
	return salvageBook(data, unmarshalOne[JournalEntry])
}
