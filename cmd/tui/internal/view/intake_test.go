package view

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/khusela/internal/application"
	"github.com/MrJamesThe3rd/khusela/internal/auth"
	"github.com/MrJamesThe3rd/khusela/internal/intake"
)

func filledIntake() IntakeModel {
	m := NewIntakeModel(nil, nil, &auth.Identity{Role: auth.RoleConsultant})
	m.state = intake.Reduce(m.state, intake.SetText{Field: intake.FieldBranch, Value: "Main"})

	return m
}

func TestIntakeModel_SubmitSucceededOpensList(t *testing.T) {
	m := filledIntake()

	app := &application.Application{Client: &application.Client{FirstName: "Jane", LastName: "Doe"}}

	next, cmd := m.handleSubmitResult(submitResultMsg{app: app})
	require.NotNil(t, cmd)

	assert.Equal(t, ApplicationCreatedMsg{Notice: "Application created for Jane Doe."}, cmd())

	got := next.(IntakeModel)
	assert.Equal(t, intake.StepCallInfo, got.state.Step)
	assert.Empty(t, got.state.Form.Text(intake.FieldBranch))
}

func TestIntakeModel_SubmitFailedKeepsForm(t *testing.T) {
	m := filledIntake()

	next, _ := m.handleSubmitResult(submitResultMsg{err: errors.New("db down")})

	got := next.(IntakeModel)
	assert.Equal(t, "Main", got.state.Form.Text(intake.FieldBranch))
	assert.Equal(t, "Failed to create application.", got.state.SubmitError)
}
