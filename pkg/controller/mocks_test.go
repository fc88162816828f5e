package controller

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/raizdigital/especies/pkg/species"
)

// mockClient - mock species client implementation
type mockClient struct {
	mock.Mock
}

func (m *mockClient) List(ctx context.Context) ([]species.Species, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]species.Species)
	return items, args.Error(1)
}

func (m *mockClient) Create(ctx context.Context, p species.Payload) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockClient) Update(ctx context.Context, id int64, p species.Payload) error {
	return m.Called(ctx, id, p).Error(0)
}

func (m *mockClient) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// recordingView keeps what the controller asked it to show.
type recordingView struct {
	renders     [][]species.Species
	formVisible bool
	formMode    FormMode
	formState   FormState
	showCalls   int
	hideCalls   int
}

func (v *recordingView) RenderList(items []species.Species) {
	v.renders = append(v.renders, items)
}

func (v *recordingView) ShowForm(mode FormMode, state FormState) {
	v.showCalls++
	v.formVisible = true
	v.formMode = mode
	v.formState = state
}

func (v *recordingView) HideForm() {
	v.hideCalls++
	v.formVisible = false
}

// emptyStateVisible mirrors what a real view shows after the last render.
func (v *recordingView) emptyStateVisible() bool {
	return len(v.renders) > 0 && len(v.renders[len(v.renders)-1]) == 0
}

// scriptedDialogs answers confirmations with a fixed value and records notices.
type scriptedDialogs struct {
	answer  bool
	asked   []string
	notices []string
}

func (d *scriptedDialogs) Confirm(message string) bool {
	d.asked = append(d.asked, message)
	return d.answer
}

func (d *scriptedDialogs) Notify(message string) {
	d.notices = append(d.notices, message)
}
