package render

import (
	"bytes"
	"encoding/csv"
	"testing"

	"smart-resume-analyzer/internal/storage/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestRecordsCSV(t *testing.T) {
	records := []models.AnalysisRecord{{
		ID:                 9,
		Name:               "Doe, John",
		Email:              "john@example.com",
		ResumeScore:        "20",
		Timestamp:          "2024-05-01 10:00:00",
		PageCount:          "2",
		PredictedField:     "Web Development",
		CandidateLevel:     "Intermediate",
		ActualSkills:       datatypes.JSON(`["React","Node JS"]`),
		RecommendedSkills:  datatypes.JSON(`["Django"]`),
		RecommendedCourses: datatypes.JSON(`[]`),
	}}

	var buf bytes.Buffer
	require.NoError(t, RecordsCSV(&buf, records))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Email_ID", rows[0][2])
	assert.Equal(t, "9", rows[1][0])
	assert.Equal(t, "Doe, John", rows[1][1])
	assert.Equal(t, `["React","Node JS"]`, rows[1][8])
}

func TestRecordsCSVHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RecordsCSV(&buf, nil))
	assert.Equal(t, "ID,Name,Email_ID,resume_score,Timestamp,Page_no,Predicted_Field,User_level,Actual_skills,Recommended_skills,Recommended_courses\n", buf.String())
}
