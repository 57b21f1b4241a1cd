package courseController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"nexora/config"
	"nexora/database"
	"nexora/middleware"
	"nexora/models"
	course "nexora/models/course"
	courseRoutes "nexora/routers/courseRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:         "test-secret",
		SaltRound:      4,
		CertificateDir: t.TempDir(),
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)
	return app
}

func createUser(t *testing.T, name, role string) (uint, string) {
	t.Helper()

	user := models.User{Name: name, Email: name + "@test.dev", Password: "x", Role: role, IsEmailVerified: true}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return user.ID, "Bearer " + token
}

func createStudent(t *testing.T, name string) (uint, string) {
	t.Helper()
	return createUser(t, name, "STUDENT")
}

func seedPublishedCourse(t *testing.T, lessonCount int, price float64) (uint, []uint) {
	t.Helper()
	db := database.Database.Db

	crs := course.Course{Title: "Test Course", Description: "d", InstructorID: 1, Price: price, IsPublished: true}
	require.NoError(t, db.Create(&crs).Error)
	sec := course.Section{CourseID: crs.ID, Title: "Part 1", OrderIndex: 1}
	require.NoError(t, db.Create(&sec).Error)

	ids := make([]uint, 0, lessonCount)
	for i := 0; i < lessonCount; i++ {
		l := course.Lesson{CourseID: crs.ID, SectionID: sec.ID, Title: fmt.Sprintf("L%d", i+1), OrderIndex: i + 1}
		require.NoError(t, db.Create(&l).Error)
		ids = append(ids, l.ID)
	}
	return crs.ID, ids
}

func doJSON(t *testing.T, app *fiber.App, method, url, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	return resp.StatusCode, result
}

func TestEnrollAndTrackProgress(t *testing.T) {
	app := setupApp(t)
	_, token := createStudent(t, "alice")
	courseID, lessons := seedPublishedCourse(t, 3, 0)

	// Enroll in a free course
	status, result := doJSON(t, app, "POST", fmt.Sprintf("/course/%d/enroll", courseID), token, nil)
	require.Equal(t, fiber.StatusCreated, status, result["message"])

	// Re-enroll is a no-op
	status, _ = doJSON(t, app, "POST", fmt.Sprintf("/course/%d/enroll", courseID), token, nil)
	assert.Equal(t, fiber.StatusOK, status)

	// Only the first lesson starts unlocked
	status, result = doJSON(t, app, "GET", fmt.Sprintf("/course/%d/progress", courseID), token, nil)
	require.Equal(t, fiber.StatusOK, status)
	states := result["data"].(map[string]interface{})["lessons"].([]interface{})
	require.Len(t, states, 3)
	assert.Equal(t, "unlocked", states[0].(map[string]interface{})["state"])
	assert.Equal(t, "locked", states[1].(map[string]interface{})["state"])
	assert.Equal(t, "locked", states[2].(map[string]interface{})["state"])

	// Completing lesson 1 unlocks lesson 2
	status, result = doJSON(t, app, "POST", fmt.Sprintf("/course/%d/progress", courseID), token,
		map[string]interface{}{"lesson_id": lessons[0], "watch_time": 120})
	require.Equal(t, fiber.StatusOK, status, result["message"])
	data := result["data"].(map[string]interface{})
	assert.Equal(t, false, data["just_completed"])
	enrollment := data["enrollment"].(map[string]interface{})
	assert.Equal(t, float64(33), enrollment["completion_rate"])
	states = data["lessons"].([]interface{})
	assert.Equal(t, "completed", states[0].(map[string]interface{})["state"])
	assert.Equal(t, "unlocked", states[1].(map[string]interface{})["state"])
	assert.Equal(t, "locked", states[2].(map[string]interface{})["state"])
}

func TestLessonAccessibilityHidesLockedVideos(t *testing.T) {
	app := setupApp(t)
	_, token := createStudent(t, "frank")
	courseID, lessons := seedPublishedCourse(t, 3, 0)
	require.NoError(t, database.Database.Db.Model(&course.Lesson{}).
		Where("course_id = ?", courseID).Update("video_url", "https://cdn.test/v.mp4").Error)

	status, _ := doJSON(t, app, "POST", fmt.Sprintf("/course/%d/enroll", courseID), token, nil)
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = doJSON(t, app, "POST", fmt.Sprintf("/course/%d/progress", courseID), token,
		map[string]interface{}{"lesson_id": lessons[0], "watch_time": 60})
	require.Equal(t, fiber.StatusOK, status)

	status, result := doJSON(t, app, "GET", fmt.Sprintf("/course/%d/lessons", courseID), token, nil)
	require.Equal(t, fiber.StatusOK, status)
	entries := result["data"].([]interface{})
	require.Len(t, entries, 3)

	first := entries[0].(map[string]interface{})
	second := entries[1].(map[string]interface{})
	third := entries[2].(map[string]interface{})

	assert.Equal(t, "completed", first["state"])
	assert.NotEmpty(t, first["video_url"])
	assert.Equal(t, "unlocked", second["state"])
	assert.NotEmpty(t, second["video_url"])
	assert.Equal(t, "locked", third["state"])
	_, hasURL := third["video_url"]
	assert.False(t, hasURL)
}

func TestProgressRejectsForeignLesson(t *testing.T) {
	app := setupApp(t)
	_, token := createStudent(t, "bob")
	courseID, _ := seedPublishedCourse(t, 2, 0)

	status, _ := doJSON(t, app, "POST", fmt.Sprintf("/course/%d/enroll", courseID), token, nil)
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = doJSON(t, app, "POST", fmt.Sprintf("/course/%d/progress", courseID), token,
		map[string]interface{}{"lesson_id": 9999, "watch_time": 10})
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestProgressWithoutEnrollment(t *testing.T) {
	app := setupApp(t)
	_, token := createStudent(t, "carol")
	courseID, lessons := seedPublishedCourse(t, 2, 0)

	status, _ := doJSON(t, app, "POST", fmt.Sprintf("/course/%d/progress", courseID), token,
		map[string]interface{}{"lesson_id": lessons[0], "watch_time": 10})
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestPaidCourseRequiresPayment(t *testing.T) {
	app := setupApp(t)
	_, token := createStudent(t, "dave")
	courseID, _ := seedPublishedCourse(t, 1, 499)

	status, _ := doJSON(t, app, "POST", fmt.Sprintf("/course/%d/enroll", courseID), token, nil)
	assert.Equal(t, fiber.StatusPaymentRequired, status)
}

func TestCertificateFlow(t *testing.T) {
	app := setupApp(t)
	_, token := createStudent(t, "erin")
	courseID, lessons := seedPublishedCourse(t, 2, 0)

	status, _ := doJSON(t, app, "POST", fmt.Sprintf("/course/%d/enroll", courseID), token, nil)
	require.Equal(t, fiber.StatusCreated, status)

	// Too early: not all lessons completed
	status, _ = doJSON(t, app, "POST", fmt.Sprintf("/course/%d/certificate/request", courseID), token, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	for _, id := range lessons {
		status, _ = doJSON(t, app, "POST", fmt.Sprintf("/course/%d/progress", courseID), token,
			map[string]interface{}{"lesson_id": id, "watch_time": 60})
		require.Equal(t, fiber.StatusOK, status)
	}

	status, result := doJSON(t, app, "POST", fmt.Sprintf("/course/%d/certificate/request", courseID), token, nil)
	require.Equal(t, fiber.StatusCreated, status, result["message"])
	cert := result["data"].(map[string]interface{})
	assert.NotEmpty(t, cert["certificate_number"])

	// A second request returns the existing certificate
	status, result = doJSON(t, app, "POST", fmt.Sprintf("/course/%d/certificate/request", courseID), token, nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, cert["certificate_number"], result["data"].(map[string]interface{})["certificate_number"])

	// Listed under the user's certificates
	status, result = doJSON(t, app, "GET", "/user/certificates", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, result["data"].([]interface{}), 1)
}

func TestResourceLifecycle(t *testing.T) {
	app := setupApp(t)
	instructorID, instToken := createUser(t, "greta", "INSTRUCTOR")
	_, studentToken := createStudent(t, "henry")
	courseID, lessons := seedPublishedCourse(t, 1, 0)
	require.NoError(t, database.Database.Db.Model(&course.Course{}).
		Where("id = ?", courseID).Update("instructor_id", instructorID).Error)

	// Instructor attaches a lesson-scoped resource
	status, result := doJSON(t, app, "POST", fmt.Sprintf("/admin/course/%d/resource", courseID), instToken,
		map[string]interface{}{
			"title":     "Slides",
			"url":       "https://cdn.test/slides.pdf",
			"type":      "pdf",
			"lesson_id": lessons[0],
		})
	require.Equal(t, fiber.StatusCreated, status, result["message"])
	resourceID := result["data"].(map[string]interface{})["ID"]

	// Anchoring to a lesson outside the course is rejected
	status, _ = doJSON(t, app, "POST", fmt.Sprintf("/admin/course/%d/resource", courseID), instToken,
		map[string]interface{}{
			"title":     "Broken",
			"url":       "https://cdn.test/x.pdf",
			"type":      "pdf",
			"lesson_id": 9999,
		})
	assert.Equal(t, fiber.StatusNotFound, status)

	// Students only see resources once enrolled
	status, _ = doJSON(t, app, "GET", fmt.Sprintf("/course/%d/resources", courseID), studentToken, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = doJSON(t, app, "POST", fmt.Sprintf("/course/%d/enroll", courseID), studentToken, nil)
	require.Equal(t, fiber.StatusCreated, status)

	status, result = doJSON(t, app, "GET", fmt.Sprintf("/course/%d/resources", courseID), studentToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	require.Len(t, result["data"].([]interface{}), 1)
	assert.Equal(t, "Slides", result["data"].([]interface{})[0].(map[string]interface{})["title"])

	// Students cannot manage resources
	status, _ = doJSON(t, app, "DELETE", fmt.Sprintf("/admin/resource/%v", resourceID), studentToken, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	// Instructor deletes it
	status, _ = doJSON(t, app, "DELETE", fmt.Sprintf("/admin/resource/%v", resourceID), instToken, nil)
	require.Equal(t, fiber.StatusOK, status)

	status, result = doJSON(t, app, "GET", fmt.Sprintf("/course/%d/resources", courseID), studentToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, result["data"].([]interface{}))
}

func TestProgressRequiresAuth(t *testing.T) {
	app := setupApp(t)
	courseID, _ := seedPublishedCourse(t, 1, 0)

	status, _ := doJSON(t, app, "GET", fmt.Sprintf("/course/%d/progress", courseID), "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}
