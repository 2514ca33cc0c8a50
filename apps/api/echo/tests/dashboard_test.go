package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/trezcool/studydesk/core/docsync"
	"github.com/trezcool/studydesk/core/event"
	"github.com/trezcool/studydesk/core/group"
	"github.com/trezcool/studydesk/core/resource"
	"github.com/trezcool/studydesk/core/schedule"
	"github.com/trezcool/studydesk/core/task"
)

func decodeView[E any](t *testing.T, data []byte) docsync.View[E] {
	t.Helper()
	var v docsync.View[E]
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("decodeView() failed: %v", err)
	}
	return v
}

func TestTaskApi_lifecycle(t *testing.T) {
	usr := createUser(t, "taskuser")
	token := getToken(t, usr)

	// initial listing: ready and empty
	req, rec := newAuthRequest(http.MethodGet, "/v1/tasks", token)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /tasks code = %v; body %s", rec.Code, rec.Body.String())
	}
	view := decodeView[task.Task](t, rec.Body.Bytes())
	if view.State != "ready" || len(view.Records) != 0 {
		t.Fatalf("view = %+v; want ready and empty", view)
	}

	// validation failure
	req, rec = newAuthRequest(http.MethodPost, "/v1/tasks", token, []byte(`{"title":""}`))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("POST /tasks (empty title) code = %v; want 400", rec.Code)
	}

	// create
	req, rec = newAuthRequest(http.MethodPost, "/v1/tasks", token, marshallObj(t, task.NewTask{Title: "revise chapter 4"}))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /tasks code = %v; body %s", rec.Code, rec.Body.String())
	}
	var created task.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshalling task: %v", err)
	}
	if created.ID == "" || created.Completed {
		t.Fatalf("created = %+v; want id set and not completed", created)
	}

	// toggle
	req, rec = newAuthRequest(http.MethodPost, "/v1/tasks/"+created.ID+"/toggle", token)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /tasks/:id/toggle code = %v; body %s", rec.Code, rec.Body.String())
	}
	var toggled task.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &toggled); err != nil {
		t.Fatalf("unmarshalling task: %v", err)
	}
	if !toggled.Completed {
		t.Error("Completed = false after toggle; want true")
	}

	// another user sees nothing
	other := createUser(t, "taskuser2")
	req, rec = newAuthRequest(http.MethodGet, "/v1/tasks", getToken(t, other))
	app.ServeHTTP(rec, req)
	if view = decodeView[task.Task](t, rec.Body.Bytes()); len(view.Records) != 0 {
		t.Errorf("other user sees %d tasks; want 0", len(view.Records))
	}

	// delete
	req, rec = newAuthRequest(http.MethodDelete, "/v1/tasks/"+created.ID, token)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE /tasks/:id code = %v; body %s", rec.Code, rec.Body.String())
	}

	// deleting again fails: the record is no longer known locally
	req, rec = newAuthRequest(http.MethodDelete, "/v1/tasks/"+created.ID, token)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("DELETE /tasks/:id (again) code = %v; want 422", rec.Code)
	}
}

func TestScheduleApi_weekdayValidation(t *testing.T) {
	usr := createUser(t, "scheduser")
	token := getToken(t, usr)

	req, rec := newAuthRequest(http.MethodPost, "/v1/classes", token, marshallObj(t, schedule.NewClass{
		Name: "Algorithms", Day: "Someday", StartTime: "09:00", EndTime: "10:30", Room: "B12",
	}))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("POST /classes code = %v; want 400; body %s", rec.Code, rec.Body.String())
	}
	var fldErrs map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &fldErrs); err != nil {
		t.Fatalf("unmarshalling field errors: %v", err)
	}
	if fldErrs["day"] != "must be a day of the week" {
		t.Errorf("day error = %q", fldErrs["day"])
	}

	req, rec = newAuthRequest(http.MethodPost, "/v1/classes", token, marshallObj(t, schedule.NewClass{
		Name: "Algorithms", Day: "Monday", StartTime: "09:00", EndTime: "10:30", Room: "B12",
	}))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Errorf("POST /classes code = %v; body %s", rec.Code, rec.Body.String())
	}
}

func TestEventApi_partialUpdate(t *testing.T) {
	usr := createUser(t, "eventuser")
	token := getToken(t, usr)

	req, rec := newAuthRequest(http.MethodPost, "/v1/events", token, marshallObj(t, event.NewEvent{
		Title: "Study session", Description: "Library", Date: "2025-11-02", Time: "18:00",
	}))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /events code = %v; body %s", rec.Code, rec.Body.String())
	}
	var created event.Event
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshalling event: %v", err)
	}

	// only the time changes; other fields keep their values
	req, rec = newAuthRequest(http.MethodPatch, "/v1/events/"+created.ID, token, []byte(`{"time":"19:30"}`))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("PATCH /events/:id code = %v; body %s", rec.Code, rec.Body.String())
	}
	var updated event.Event
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("unmarshalling event: %v", err)
	}
	if updated.Time != "19:30" {
		t.Errorf("Time = %q; want 19:30", updated.Time)
	}
	if updated.Title != "Study session" || updated.Date != "2025-11-02" {
		t.Errorf("untouched fields changed: %+v", updated)
	}

	// malformed date is rejected
	req, rec = newAuthRequest(http.MethodPatch, "/v1/events/"+created.ID, token, []byte(`{"date":"tomorrow"}`))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("PATCH /events/:id (bad date) code = %v; want 400", rec.Code)
	}
}

func TestResourceApi_update(t *testing.T) {
	usr := createUser(t, "resuser")
	token := getToken(t, usr)

	req, rec := newAuthRequest(http.MethodPost, "/v1/resources", token, marshallObj(t, resource.NewResource{
		Title: "Go tour", URL: "https://go.dev/tour", Category: "programming",
	}))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /resources code = %v; body %s", rec.Code, rec.Body.String())
	}
	var created resource.Resource
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshalling resource: %v", err)
	}

	req, rec = newAuthRequest(http.MethodPatch, "/v1/resources/"+created.ID, token, []byte(`{"category":"golang"}`))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("PATCH /resources/:id code = %v; body %s", rec.Code, rec.Body.String())
	}
	var updated resource.Resource
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("unmarshalling resource: %v", err)
	}
	if updated.Category != "golang" || updated.URL != "https://go.dev/tour" {
		t.Errorf("updated = %+v", updated)
	}
}

func TestGroupApi_leave(t *testing.T) {
	usr := createUser(t, "groupuser")
	token := getToken(t, usr)

	req, rec := newAuthRequest(http.MethodPost, "/v1/study-groups", token, marshallObj(t, group.NewGroup{
		Name: "Physics crew", Description: "Weekly problem sets",
	}))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /study-groups code = %v; body %s", rec.Code, rec.Body.String())
	}
	var created group.Group
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshalling group: %v", err)
	}
	if created.CreatedBy != usr.ID {
		t.Errorf("CreatedBy = %q; want %q", created.CreatedBy, usr.ID)
	}

	req, rec = newAuthRequest(http.MethodPost, "/v1/study-groups/"+created.ID+"/leave", token)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("POST /study-groups/:id/leave code = %v; body %s", rec.Code, rec.Body.String())
	}

	req, rec = newAuthRequest(http.MethodGet, "/v1/study-groups", token)
	app.ServeHTTP(rec, req)
	if view := decodeView[group.Group](t, rec.Body.Bytes()); len(view.Records) != 0 {
		t.Errorf("still sees %d groups after leave; want 0", len(view.Records))
	}
}

func TestAnnouncementApi_recent(t *testing.T) {
	usr := createUser(t, "annuser")

	// seed 6 before the first session access; only the 5 newest show
	for day := 1; day <= 6; day++ {
		seedDoc(t, "announcements", map[string]interface{}{
			"title":   fmt.Sprintf("notice %d", day),
			"content": "...",
			"date":    fmt.Sprintf("2025-09-0%d", day),
			"userId":  usr.ID,
		})
	}

	req, rec := newAuthRequest(http.MethodGet, "/v1/announcements", getToken(t, usr))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /announcements code = %v; body %s", rec.Code, rec.Body.String())
	}

	var view struct {
		State   string `json:"state"`
		Records []struct {
			Date string `json:"date"`
		} `json:"records"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("unmarshalling view: %v", err)
	}
	if len(view.Records) != 5 {
		t.Fatalf("Records = %d; want 5", len(view.Records))
	}
	if view.Records[0].Date != "2025-09-06" || view.Records[4].Date != "2025-09-02" {
		t.Errorf("Records dates = %v; want 2025-09-06 .. 2025-09-02 desc", view.Records)
	}
}

func TestCanvasApi(t *testing.T) {
	usr := createUser(t, "canvasuser")
	token := getToken(t, usr)

	t.Run("fetch all", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/canvas", token)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET /canvas code = %v; body %s", rec.Code, rec.Body.String())
		}
		var view struct {
			State   string `json:"state"`
			Records []struct {
				Assignments []struct {
					Name string `json:"name"`
				} `json:"assignments"`
			} `json:"records"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
			t.Fatalf("unmarshalling view: %v", err)
		}
		if view.State != "ready" || len(view.Records) != 1 {
			t.Fatalf("view = %+v; want one ready snapshot", view)
		}
		if len(view.Records[0].Assignments) != 3 {
			t.Errorf("Assignments = %d; want 3", len(view.Records[0].Assignments))
		}
	})

	t.Run("submit requires a file", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/canvas/assignments/1/submit", token)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("code = %v; want 400; body %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("submit unknown assignment", func(t *testing.T) {
		req, rec := newUploadRequest(t, http.MethodPost, "/v1/canvas/assignments/99/submit", token, "file", "essay.pdf", []byte("contents"))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("code = %v; want 404; body %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("submit ok", func(t *testing.T) {
		req, rec := newUploadRequest(t, http.MethodPost, "/v1/canvas/assignments/1/submit", token, "file", "essay.pdf", []byte("contents"))
		app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusOK, wantData: marshallObj(t, map[string]string{"success": "Assignment submitted successfully!"})}
		checkCodeAndData(t, tt, rec)
	})
}

func TestPlannerApi(t *testing.T) {
	usr := createUser(t, "planuser")
	token := getToken(t, usr)

	req, rec := newAuthRequest(http.MethodPost, "/v1/planner/plans", token, []byte(
		`{"name":"Fall 2025","startDate":"2025-09-01","endDate":"2025-12-20","courses":["Algorithms","Databases"]}`,
	))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /planner/plans code = %v; body %s", rec.Code, rec.Body.String())
	}

	req, rec = newAuthRequest(http.MethodPost, "/v1/planner/milestones", token, []byte(
		`{"projectName":"Compiler","milestoneName":"Parser done","dueDate":"2025-10-15"}`,
	))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /planner/milestones code = %v; body %s", rec.Code, rec.Body.String())
	}

	req, rec = newAuthRequest(http.MethodPost, "/v1/planner/schedules", token, []byte(
		`{"subject":"Statistics","dayOfWeek":"Thursday","startTime":"16:00","endTime":"18:00"}`,
	))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /planner/schedules code = %v; body %s", rec.Code, rec.Body.String())
	}

	for _, path := range []string{"/v1/planner/plans", "/v1/planner/milestones", "/v1/planner/schedules"} {
		req, rec = newAuthRequest(http.MethodGet, path, token)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s code = %v; body %s", path, rec.Code, rec.Body.String())
		}
		var view struct {
			State   string            `json:"state"`
			Records []json.RawMessage `json:"records"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
			t.Fatalf("unmarshalling view: %v", err)
		}
		if view.State != "ready" || len(view.Records) != 1 {
			t.Errorf("GET %s view state=%q records=%d; want ready/1", path, view.State, len(view.Records))
		}
	}
}
