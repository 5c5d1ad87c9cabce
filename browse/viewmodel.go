// Package browse holds the collection view-model: the search text, sort order
// and detail-view position that the presentation layer renders from.
//
// A ViewModel is owned by a single event loop and is not safe for concurrent
// use.
package browse

import (
	"errors"
	"fmt"

	"mtgcards/models"
)

// DefaultDragThreshold is the horizontal drag distance a swipe must exceed
// before it pages the detail view.
const DefaultDragThreshold = 50.0

// ErrIndexOutOfRange is returned by Select for an index outside the
// displayed list.
var ErrIndexOutOfRange = errors.New("index out of range")

// PanelMode is the extra panel shown under the detail view.
type PanelMode int

const (
	PanelNone PanelMode = iota
	PanelRulings
	PanelVersions
)

// String returns a lower-case label for the mode.
func (p PanelMode) String() string {
	switch p {
	case PanelNone:
		return "none"
	case PanelRulings:
		return "rulings"
	case PanelVersions:
		return "versions"
	default:
		return fmt.Sprintf("PanelMode(%d)", int(p))
	}
}

// DragResult reports what a drag gesture did.
type DragResult int

const (
	DragIgnored DragResult = iota
	DragPrevious
	DragNext
)

// DetailView is a snapshot of the detail screen.
type DetailView struct {
	Card              models.Card
	Index             int
	Count             int
	PanelMode         PanelMode
	ImagePopupVisible bool
	HasPrevious       bool
	HasNext           bool
}

// ViewModel owns the in-memory collection and the state derived from it.
type ViewModel struct {
	all []models.Card

	searchText string
	sortKey    SortKey
	directions map[SortKey]Direction

	displayed []models.Card

	detailOpen        bool
	currentIndex      int
	panelMode         PanelMode
	imagePopupVisible bool
	dragThreshold     float64
}

// New creates a view-model over cards, sorted by name ascending with no
// search text.
func New(cards []models.Card) *ViewModel {
	all := make([]models.Card, len(cards))
	copy(all, cards)

	vm := &ViewModel{
		all:     all,
		sortKey: SortByName,
		directions: map[SortKey]Direction{
			SortByName:            Ascending,
			SortByCollectorNumber: Ascending,
		},
		dragThreshold: DefaultDragThreshold,
	}
	vm.recompute()
	return vm
}

// recompute rebuilds the displayed list and re-clamps the detail index. A
// moved index resets the panel mode like any other index change.
func (vm *ViewModel) recompute() {
	filtered := FilterCards(vm.all, vm.searchText)
	vm.displayed = SortCards(filtered, vm.sortKey, vm.directions[SortByName], vm.directions[SortByCollectorNumber])

	index := clamp(vm.currentIndex, len(vm.displayed))
	if index != vm.currentIndex {
		vm.currentIndex = index
		vm.panelMode = PanelNone
	}
}

func clamp(index, count int) int {
	if index > count-1 {
		index = count - 1
	}
	if index < 0 {
		index = 0
	}
	return index
}

// SetSearchText replaces the search text and recomputes the displayed list.
func (vm *ViewModel) SetSearchText(text string) {
	if text == vm.searchText {
		return
	}
	vm.searchText = text
	vm.recompute()
}

// SearchText returns the current search text.
func (vm *ViewModel) SearchText() string {
	return vm.searchText
}

// SetSortKey makes key the active sort key. The directions of both keys are
// left as they are.
func (vm *ViewModel) SetSortKey(key SortKey) {
	if key == vm.sortKey {
		return
	}
	vm.sortKey = key
	vm.recompute()
}

// SortKey returns the active sort key.
func (vm *ViewModel) SortKey() SortKey {
	return vm.sortKey
}

// SetDirection sets the direction used for key.
func (vm *ViewModel) SetDirection(key SortKey, direction Direction) {
	if vm.directions[key] == direction {
		return
	}
	vm.directions[key] = direction
	vm.recompute()
}

// ToggleDirection flips the direction used for key only.
func (vm *ViewModel) ToggleDirection(key SortKey) {
	vm.SetDirection(key, vm.directions[key].Toggle())
}

// Direction returns the direction used for key.
func (vm *ViewModel) Direction(key SortKey) Direction {
	return vm.directions[key]
}

// Cards returns the displayed list: filtered by the search text, then sorted.
func (vm *ViewModel) Cards() []models.Card {
	cards := make([]models.Card, len(vm.displayed))
	copy(cards, vm.displayed)
	return cards
}

// Len returns the length of the displayed list.
func (vm *ViewModel) Len() int {
	return len(vm.displayed)
}

// Select opens the detail view at index of the displayed list.
func (vm *ViewModel) Select(index int) (DetailView, error) {
	if index < 0 || index >= len(vm.displayed) {
		return DetailView{}, fmt.Errorf("select card %d of %d: %w", index, len(vm.displayed), ErrIndexOutOfRange)
	}

	vm.detailOpen = true
	vm.currentIndex = index
	vm.panelMode = PanelNone
	return vm.Detail(), nil
}

// Return closes the detail view. The current index is kept so the grid can
// restore its cursor.
func (vm *ViewModel) Return() {
	vm.detailOpen = false
}

// DetailOpen reports whether a detail view is open.
func (vm *ViewModel) DetailOpen() bool {
	return vm.detailOpen
}

// CurrentIndex returns the detail index into the displayed list.
func (vm *ViewModel) CurrentIndex() int {
	return vm.currentIndex
}

// Current returns the card at the current index. It reports false when the
// displayed list is empty.
func (vm *ViewModel) Current() (models.Card, bool) {
	if len(vm.displayed) == 0 {
		return models.Card{}, false
	}
	return vm.displayed[vm.currentIndex], true
}

// Detail returns a snapshot of the detail view state.
func (vm *ViewModel) Detail() DetailView {
	card, _ := vm.Current()
	count := len(vm.displayed)
	return DetailView{
		Card:              card,
		Index:             vm.currentIndex,
		Count:             count,
		PanelMode:         vm.panelMode,
		ImagePopupVisible: vm.imagePopupVisible,
		HasPrevious:       vm.currentIndex > 0,
		HasNext:           vm.currentIndex < count-1,
	}
}

// Next moves to the following card unless the current card is the last one.
// The panel mode is reset either way.
func (vm *ViewModel) Next() {
	if vm.currentIndex < len(vm.displayed)-1 {
		vm.currentIndex++
	}
	vm.panelMode = PanelNone
}

// Previous moves to the preceding card unless the current card is the first
// one. The panel mode is reset either way.
func (vm *ViewModel) Previous() {
	if vm.currentIndex > 0 {
		vm.currentIndex--
	}
	vm.panelMode = PanelNone
}

// SetPanelMode shows the given panel. Selecting the mode that is already
// shown keeps it shown.
func (vm *ViewModel) SetPanelMode(mode PanelMode) {
	vm.panelMode = mode
}

// PanelMode returns the panel currently shown.
func (vm *ViewModel) PanelMode() PanelMode {
	return vm.panelMode
}

// ToggleImagePopup shows or hides the zoomed image.
func (vm *ViewModel) ToggleImagePopup() {
	vm.imagePopupVisible = !vm.imagePopupVisible
}

// ImagePopupVisible reports whether the zoomed image is shown.
func (vm *ViewModel) ImagePopupVisible() bool {
	return vm.imagePopupVisible
}

// SetDragThreshold overrides DefaultDragThreshold. Non-positive values are
// ignored.
func (vm *ViewModel) SetDragThreshold(threshold float64) {
	if threshold > 0 {
		vm.dragThreshold = threshold
	}
}

// HandleDrag pages the detail view from a completed horizontal drag. A drag
// to the right past the threshold goes to the previous card, a drag to the
// left goes to the next one, and anything shorter does nothing. Drags are
// ignored while no detail view is open.
func (vm *ViewModel) HandleDrag(translation float64) DragResult {
	if !vm.detailOpen {
		return DragIgnored
	}

	switch {
	case translation > vm.dragThreshold:
		vm.Previous()
		return DragPrevious
	case translation < -vm.dragThreshold:
		vm.Next()
		return DragNext
	default:
		return DragIgnored
	}
}
