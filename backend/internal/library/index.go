package library

import (
	"errors"
	"fmt"
)

var ErrNotInIndex = errors.New("not in index")

// Index is an immutable snapshot of the gallery: every image name with a
// stable id in scan order.
type Index struct {
	names []string
	ids   map[string]int
}

type Entry struct {
	Id     int
	Name   string
	Total  int
	PrevId int
	NextId int
}

func NewIndex(names []string) *Index {
	index := &Index{
		names: append([]string(nil), names...),
		ids:   make(map[string]int, len(names)),
	}
	for id, name := range index.names {
		index.ids[name] = id
	}
	return index
}

func (s *Index) Len() int {
	return len(s.names)
}

func (s *Index) Names() []string {
	return append([]string(nil), s.names...)
}

func (s *Index) IdOf(name string) (int, bool) {
	id, ok := s.ids[name]
	return id, ok
}

// EntryAt returns the entry for id. The neighbours of the first and last
// entries are clamped to the entry itself.
func (s *Index) EntryAt(id int) (*Entry, error) {
	if id < 0 || id >= len(s.names) {
		return nil, fmt.Errorf("%w: id %d of %d", ErrNotInIndex, id, len(s.names))
	}
	return &Entry{
		Id:     id,
		Name:   s.names[id],
		Total:  len(s.names),
		PrevId: max(0, id-1),
		NextId: min(len(s.names)-1, id+1),
	}, nil
}

func (s *Index) EntryFor(name string) (*Entry, error) {
	id, ok := s.ids[name]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrNotInIndex, name)
	}
	return s.EntryAt(id)
}
