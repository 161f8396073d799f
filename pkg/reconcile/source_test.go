package reconcile

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courseatlas/courseatlas/pkg/normalize"
)

func TestSourceDocumentDecode(t *testing.T) {
	data := `{
		"name": "shs.json",
		"school": "Seven Lakes High School",
		"courses": [
			{
				"courseCode": "0100A",
				"courseName": "Art 1 A",
				"credits": "0.5 credit",
				"tags": ["CTE"],
				"eligibleGrades": "9, 10, 11, 12",
				"prerequisite": "None"
			},
			{
				"courseCode": "0200",
				"courseName": "AP Biology",
				"credits": 1,
				"eligibleGrades": ["10", "11", "12"]
			}
		]
	}`

	var doc SourceDocument
	require.NoError(t, json.Unmarshal([]byte(data), &doc))
	require.True(t, doc.HasCourses())
	require.Len(t, *doc.Courses, 2)

	art := (*doc.Courses)[0]
	assert.Equal(t, 0.5, art.Credits.Value())
	assert.Equal(t, FlexList{"9", "10", "11", "12"}, art.EligibleGrades)

	bio := (*doc.Courses)[1]
	assert.Equal(t, 1.0, bio.Credits.Value())
	assert.Equal(t, FlexList{"10", "11", "12"}, bio.EligibleGrades)
}

func TestSourceDocumentMissingCourses(t *testing.T) {
	var doc SourceDocument
	require.NoError(t, json.Unmarshal([]byte(`{"name":"broken.json","school":"Taylor High School"}`), &doc))
	assert.False(t, doc.HasCourses())
}

func TestRawCourseNormalize(t *testing.T) {
	raw := RawCourse{
		Code:           " 0100A ",
		Name:           "  Art 1 A ",
		Credits:        FlexNumber{Raw: "0.5"},
		Tags:           []string{"CTE", "CTE"},
		EligibleGrades: FlexList{"9", " 10 ", ""},
		Description:    "Students  will\tstudy art.",
	}

	course := raw.Normalize()

	assert.Equal(t, "0100A", course.Code)
	assert.Equal(t, "Art 1 A", course.Name)
	assert.Equal(t, 0.5, course.Credits)
	assert.Equal(t, []string{"CTE"}, course.Tags)
	assert.Equal(t, []string{"9", "10"}, course.EligibleGrades)
	assert.Equal(t, "Students will study art.", course.Description)
	assert.Equal(t, normalize.NA, course.Subject)
	assert.Equal(t, normalize.NA, course.Prerequisite)
	assert.NotNil(t, course.Schools)
	assert.Equal(t, 4.0, float64(course.GPA))
}

func TestFlexNumberRejectsOtherTypes(t *testing.T) {
	var f FlexNumber
	if err := json.Unmarshal([]byte(`{"bad":true}`), &f); err == nil {
		t.Error("objects should not decode as credits")
	}
}

func TestFlexListEmptyString(t *testing.T) {
	var f FlexList
	require.NoError(t, json.Unmarshal([]byte(`"n/a"`), &f))
	if !reflect.DeepEqual([]string(f), []string{}) {
		t.Errorf("n/a grades should decode to an empty list, got %v", f)
	}
}
