package dataaccess

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// File is binary form content awaiting upload.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Selection is a set of chosen option keys. Single writes one value under
// the field name, Multiple writes name[0], name[1], ...
type Selection struct {
	multiple bool
	keys     []string
}

func Single(key string) Selection {
	return Selection{keys: []string{key}}
}

func Multiple(keys ...string) Selection {
	return Selection{multiple: true, keys: slices.Clone(keys)}
}

func (s Selection) IsMultiple() bool { return s.multiple }
func (s Selection) Keys() []string   { return slices.Clone(s.keys) }

// ArrayObject is an item of an editable list of uploads, such as a gallery.
type ArrayObject struct {
	ID       any
	Value    any
	Uploaded bool
	Deleted  bool
}

// Form is the mutable state of a submit operation. Values keep insertion
// order, which is also the order of multipart parts.
type Form struct {
	keys    []string
	values  map[string]any
	checked map[string][]string
	ckeys   []string
	images  map[int]*File
	nextImg int
}

// NewForm starts from initial, ordered by key.
func NewForm(initial map[string]any) *Form {
	f := &Form{
		values:  make(map[string]any),
		checked: make(map[string][]string),
		images:  make(map[int]*File),
	}
	for _, k := range slices.Sorted(maps.Keys(initial)) {
		f.Set(k, initial[k])
	}
	return f
}

func (f *Form) Set(name string, value any) {
	if _, ok := f.values[name]; !ok {
		f.keys = append(f.keys, name)
	}
	f.values[name] = value
}

func (f *Form) Get(name string) (any, bool) {
	v, ok := f.values[name]
	return v, ok
}

func (f *Form) Delete(name string) {
	if _, ok := f.values[name]; !ok {
		return
	}
	delete(f.values, name)
	f.keys = slices.DeleteFunc(f.keys, func(k string) bool { return k == name })
}

// Values returns a copy of the current values.
func (f *Form) Values() map[string]any {
	return maps.Clone(f.values)
}

func (f *Form) SetText(name, value string) {
	f.Set(name, value)
}

// SetCheckbox stores checkbox state as 1 or 0.
func (f *Form) SetCheckbox(name string, checked bool) {
	if checked {
		f.Set(name, 1)
		return
	}
	f.Set(name, 0)
}

// SetFile stores an upload; nil clears the field.
func (f *Form) SetFile(name string, file *File) {
	if file == nil {
		f.Set(name, nil)
		return
	}
	f.Set(name, file)
}

// SetSelection replaces earlier selections stored under name.
func (f *Form) SetSelection(name string, sel Selection) {
	prefix := name + "["
	for _, k := range slices.Clone(f.keys) {
		if strings.HasPrefix(k, prefix) {
			f.Delete(k)
		}
	}
	if !sel.multiple {
		if len(sel.keys) == 0 {
			f.Set(name, nil)
			return
		}
		f.Set(name, sel.keys[0])
		return
	}
	f.Delete(name)
	for i, key := range sel.keys {
		f.Set(fmt.Sprintf("%s[%d]", name, i), key)
	}
}

// ToggleChecked adds value to or removes it from the checked array name.
func (f *Form) ToggleChecked(name, value string, on bool) {
	if _, ok := f.checked[name]; !ok {
		f.ckeys = append(f.ckeys, name)
	}
	current := f.checked[name]
	if on {
		if !slices.Contains(current, value) {
			current = append(current, value)
		}
	} else {
		current = slices.DeleteFunc(slices.Clone(current), func(v string) bool { return v == value })
	}
	f.checked[name] = current
}

func (f *Form) Checked(name string) []string {
	return slices.Clone(f.checked[name])
}

// AddImages tracks files sent as images[index]. Indexes continue after the
// images already tracked.
func (f *Form) AddImages(files ...*File) {
	for _, file := range files {
		if file == nil {
			continue
		}
		f.images[f.nextImg] = file
		f.nextImg++
	}
}

func (f *Form) RemoveImage(index int) {
	delete(f.images, index)
}

func (f *Form) Images() int {
	return len(f.images)
}

// PrepareArray returns name[i] entries for items with data layered on top.
func PrepareArray(items []any, name string, data map[string]any) map[string]any {
	out := make(map[string]any, len(items)+len(data))
	for i, item := range items {
		out[fmt.Sprintf("%s[%d]", name, i)] = item
	}
	maps.Copy(out, data)
	return out
}

// PrepareArrayOfObjects returns the form values plus, for each list,
// name[i] for new uploads and old_images_to_delete[i] for removed ones.
func (f *Form) PrepareArrayOfObjects(lists [][]ArrayObject, names []string) map[string]any {
	out := f.Values()
	for li, list := range lists {
		if li >= len(names) {
			break
		}
		i := 0
		for _, ob := range list {
			if ob.Uploaded && !ob.Deleted {
				out[fmt.Sprintf("%s[%d]", names[li], i)] = ob.Value
				i++
			}
		}
		i = 0
		for _, ob := range list {
			if ob.Deleted && !ob.Uploaded {
				out[fmt.Sprintf("old_images_to_delete[%d]", i)] = ob.ID
				i++
			}
		}
	}
	return out
}
