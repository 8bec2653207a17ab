package domain

import (
	"errors"
	"slices"
)

var ErrIndexOutOfRange = errors.New("index out of range")

// Entry is one experience or education line.
type Entry struct {
	Title       string `json:"title"`
	Period      string `json:"period"`
	Description string `json:"description"`
}

// Statistic is a named skill level shown as a progress bar.
type Statistic struct {
	Name       string `json:"name"`
	Percentage int    `json:"percentage" binding:"min=0,max=100"`
}

// AboutData is the single about-me record. Its lists are identified by
// position only and are rewritten as a whole on every save.
type AboutData struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	Experience  []Entry     `json:"experience"`
	Education   []Entry     `json:"education"`
	Statistics  []Statistic `json:"statistics" binding:"dive"`
}

// DefaultAbout is the record stored values are merged over.
func DefaultAbout() AboutData {
	return AboutData{
		Experience: []Entry{},
		Education:  []Entry{},
		Statistics: []Statistic{},
	}
}

func (a AboutData) Validate() error {
	return Validate(a)
}

// Normalize replaces nil lists with empty ones so an explicit null in a
// stored record renders like a missing field.
func (a *AboutData) Normalize() {
	if a.Experience == nil {
		a.Experience = []Entry{}
	}
	if a.Education == nil {
		a.Education = []Entry{}
	}
	if a.Statistics == nil {
		a.Statistics = []Statistic{}
	}
}

func (a *AboutData) AppendExperience(e Entry) {
	a.Experience = appendItem(a.Experience, e)
}

func (a *AboutData) UpdateExperience(i int, e Entry) error {
	list, err := updateItem(a.Experience, i, e)
	if err != nil {
		return err
	}
	a.Experience = list
	return nil
}

func (a *AboutData) RemoveExperience(i int) error {
	list, err := removeItem(a.Experience, i)
	if err != nil {
		return err
	}
	a.Experience = list
	return nil
}

func (a *AboutData) AppendEducation(e Entry) {
	a.Education = appendItem(a.Education, e)
}

func (a *AboutData) UpdateEducation(i int, e Entry) error {
	list, err := updateItem(a.Education, i, e)
	if err != nil {
		return err
	}
	a.Education = list
	return nil
}

func (a *AboutData) RemoveEducation(i int) error {
	list, err := removeItem(a.Education, i)
	if err != nil {
		return err
	}
	a.Education = list
	return nil
}

func (a *AboutData) AppendStatistic(s Statistic) {
	a.Statistics = appendItem(a.Statistics, s)
}

func (a *AboutData) UpdateStatistic(i int, s Statistic) error {
	list, err := updateItem(a.Statistics, i, s)
	if err != nil {
		return err
	}
	a.Statistics = list
	return nil
}

func (a *AboutData) RemoveStatistic(i int) error {
	list, err := removeItem(a.Statistics, i)
	if err != nil {
		return err
	}
	a.Statistics = list
	return nil
}

// The helpers never write into the caller's backing array.

func appendItem[T any](list []T, item T) []T {
	return append(slices.Clone(list), item)
}

func updateItem[T any](list []T, i int, item T) ([]T, error) {
	if i < 0 || i >= len(list) {
		return nil, ErrIndexOutOfRange
	}
	out := slices.Clone(list)
	out[i] = item
	return out, nil
}

func removeItem[T any](list []T, i int) ([]T, error) {
	if i < 0 || i >= len(list) {
		return nil, ErrIndexOutOfRange
	}
	out := make([]T, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...), nil
}
