package quiz

// Question is a single-select quiz item.
type Question struct {
	Text    string   `yaml:"text"`
	Options []string `yaml:"options"`
}

// HasOption reports whether option is one of the question's options.
func (q Question) HasOption(option string) bool {
	for _, o := range q.Options {
		if o == option {
			return true
		}
	}
	return false
}

// Section is a named group of related questions.
type Section struct {
	Title     string     `yaml:"title"`
	Questions []Question `yaml:"questions"`
}

// Definition is the full quiz content. It is loaded once and never
// mutated afterwards.
type Definition struct {
	Title    string    `yaml:"title"`
	Sections []Section `yaml:"sections"`
}

// Key addresses one question's answer slot.
type Key struct {
	Section  int
	Question int
}

// Total returns the number of questions across all sections.
func (d *Definition) Total() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Questions)
	}
	return n
}

// Question returns the question addressed by k.
func (d *Definition) Question(k Key) (Question, bool) {
	if k.Section < 0 || k.Section >= len(d.Sections) {
		return Question{}, false
	}
	qs := d.Sections[k.Section].Questions
	if k.Question < 0 || k.Question >= len(qs) {
		return Question{}, false
	}
	return qs[k.Question], true
}

// Keys returns every question key in definition order: sections first,
// then questions within a section.
func (d *Definition) Keys() []Key {
	keys := make([]Key, 0, d.Total())
	for si, s := range d.Sections {
		for qi := range s.Questions {
			keys = append(keys, Key{Section: si, Question: qi})
		}
	}
	return keys
}
