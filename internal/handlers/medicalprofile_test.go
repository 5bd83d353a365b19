package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profileView struct {
	UserID           string `json:"userId"`
	HealthConditions []struct {
		ID        string `json:"id"`
		Condition string `json:"condition"`
		Severity  string `json:"severity"`
	} `json:"healthConditions"`
	Medications []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"medications"`
	Allergies []string `json:"allergies"`
	BloodType string   `json:"bloodType"`
}

func TestMedicalProfileConditionScenario(t *testing.T) {
	router := newTestRouter(t, nil)

	// First read lazily creates an empty profile.
	rec := doJSON(t, router, http.MethodGet, "/api/medical-profile?userId=a@x.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var profile profileView
	decodeBody(t, rec, &profile)
	assert.Equal(t, "a@x.com", profile.UserID)
	assert.Empty(t, profile.HealthConditions)
	assert.NotNil(t, profile.Allergies)

	rec = doJSON(t, router, http.MethodPost, "/api/medical-profile/condition", map[string]string{
		"userId":    "a@x.com",
		"condition": "Asthma",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &profile)
	require.Len(t, profile.HealthConditions, 1)
	assert.Equal(t, "Asthma", profile.HealthConditions[0].Condition)
	assert.Equal(t, "moderate", profile.HealthConditions[0].Severity)

	rec = doJSON(t, router, http.MethodDelete, "/api/medical-profile/condition", map[string]string{
		"userId":      "a@x.com",
		"conditionId": profile.HealthConditions[0].ID,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &profile)
	assert.Empty(t, profile.HealthConditions)
}

func TestMedicalProfileMedicationScenario(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/medical-profile/medication", map[string]string{
		"userId": "a@x.com",
		"name":   "Ventolin",
		"dosage": "100mcg",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var profile profileView
	decodeBody(t, rec, &profile)
	require.Len(t, profile.Medications, 1)

	rec = doJSON(t, router, http.MethodDelete, "/api/medical-profile/medication", map[string]string{
		"userId":       "a@x.com",
		"medicationId": profile.Medications[0].ID,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &profile)
	assert.Empty(t, profile.Medications)
}

func TestMedicalProfileUpdateAndContext(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/medical-profile", map[string]interface{}{
		"userId": "a@x.com",
		"healthConditions": []map[string]string{
			{"condition": "Diabetes", "severity": "moderate"},
		},
		"medications": []map[string]string{
			{"name": "Metformin", "dosage": "500mg", "frequency": "twice daily"},
		},
		"allergies": []string{"penicillin"},
		"bloodType": "O+",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var profile profileView
	decodeBody(t, rec, &profile)
	require.Len(t, profile.HealthConditions, 1)
	assert.Equal(t, []string{"penicillin"}, profile.Allergies)
	assert.Equal(t, "O+", profile.BloodType)

	rec = doJSON(t, router, http.MethodGet, "/api/medical-profile/context?userId=a@x.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var ctxResp struct {
		Context string `json:"context"`
	}
	decodeBody(t, rec, &ctxResp)
	assert.Contains(t, ctxResp.Context, "Health conditions: Diabetes")
	assert.Contains(t, ctxResp.Context, "Metformin (500mg)")
	assert.Contains(t, ctxResp.Context, "Allergies: penicillin")
}

func TestMedicalProfileContextNoProfile(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodGet, "/api/medical-profile/context?userId=nobody@x.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"context":""}`, rec.Body.String())
}

func TestMedicalProfileRejectsBadConditionID(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodDelete, "/api/medical-profile/condition", map[string]string{
		"userId":      "a@x.com",
		"conditionId": "not-a-uuid",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
