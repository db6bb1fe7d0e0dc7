package itinerary

// EditorMode is the state of the activity editor.
type EditorMode string

// Editor states.
const (
	EditorClosed EditorMode = "closed"
	EditorCreate EditorMode = "create"
	EditorEdit   EditorMode = "edit"
)

// Draft holds the fields being edited. Date is fixed by the opened day.
type Draft struct {
	Date        string       `json:"date"`
	Type        ActivityType `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	RouteID     string       `json:"routeId,omitempty"`
}

// Editor is the create/edit dialog for a single activity.
//
//	closed -> create (OpenCreate) | edit (OpenEdit)
//	create|edit -> closed (Cancel | Save)
//	edit -> closed (Delete)
type Editor struct {
	Mode       EditorMode `json:"mode"`
	ActivityID string     `json:"activityId,omitempty"`
	Draft      *Draft     `json:"draft,omitempty"`
}

// NewEditor returns a closed editor.
func NewEditor() Editor {
	return Editor{Mode: EditorClosed}
}

func (e *Editor) isOpen() bool {
	return e.Mode == EditorCreate || e.Mode == EditorEdit
}

func (e *Editor) close() {
	e.Mode = EditorClosed
	e.ActivityID = ""
	e.Draft = nil
}

// OpenCreate opens a blank draft on day.
func (e *Editor) OpenCreate(day string) error {
	if e.isOpen() {
		return ErrInvalidTransition
	}
	if _, err := ParseDay(day); err != nil {
		return err
	}
	e.Mode = EditorCreate
	e.ActivityID = ""
	e.Draft = &Draft{Date: day, Type: TypeTravel}
	return nil
}

// OpenEdit loads an existing activity into the draft.
func (e *Editor) OpenEdit(a Activity) error {
	if e.isOpen() {
		return ErrInvalidTransition
	}
	e.Mode = EditorEdit
	e.ActivityID = a.ID
	e.Draft = &Draft{
		Date:        a.Date,
		Type:        a.Type,
		Title:       a.Title,
		Description: a.Description,
		RouteID:     a.RouteID,
	}
	return nil
}

// UpdateDraft replaces the draft fields. The date cannot change.
func (e *Editor) UpdateDraft(d Draft) error {
	if !e.isOpen() {
		return ErrInvalidTransition
	}
	if d.Type != "" && !d.Type.Valid() {
		return ErrInvalidActivityType
	}
	if d.Type == "" {
		d.Type = e.Draft.Type
	}
	d.Date = e.Draft.Date
	e.Draft = &d
	return nil
}

// Cancel discards the draft.
func (e *Editor) Cancel() error {
	if !e.isOpen() {
		return ErrInvalidTransition
	}
	e.close()
	return nil
}

// Save writes the draft into activities and closes the editor. Create mode
// appends a new manual activity; edit mode overwrites by id and marks the
// activity manual.
func (e *Editor) Save(activities []Activity, ids IDFunc) ([]Activity, Activity, error) {
	if !e.isOpen() {
		return nil, Activity{}, ErrInvalidTransition
	}
	if ids == nil {
		ids = NewID
	}

	a := Activity{
		Date:        e.Draft.Date,
		Type:        e.Draft.Type,
		Title:       e.Draft.Title,
		Description: e.Draft.Description,
		RouteID:     e.Draft.RouteID,
		Source:      SourceManual,
	}

	out := append([]Activity{}, activities...)
	if e.Mode == EditorCreate {
		a.ID = ids()
		out = append(out, a)
	} else {
		a.ID = e.ActivityID
		idx := indexOf(out, a.ID)
		if idx < 0 {
			return nil, Activity{}, ErrActivityNotFound
		}
		out[idx] = a
	}

	e.close()
	return out, a, nil
}

// Delete removes the activity being edited and closes the editor.
func (e *Editor) Delete(activities []Activity) ([]Activity, error) {
	if e.Mode != EditorEdit {
		return nil, ErrInvalidTransition
	}
	idx := indexOf(activities, e.ActivityID)
	if idx < 0 {
		return nil, ErrActivityNotFound
	}

	out := make([]Activity, 0, len(activities)-1)
	out = append(out, activities[:idx]...)
	out = append(out, activities[idx+1:]...)
	e.close()
	return out, nil
}

func indexOf(activities []Activity, id string) int {
	for i, a := range activities {
		if a.ID == id {
			return i
		}
	}
	return -1
}
