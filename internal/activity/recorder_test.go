package activity

import (
	"strings"
	"testing"
	"time"

	"github.com/lemanjenny/GoalSpark2.0/internal/domain"
)

var fixedTime = time.Date(2026, time.July, 10, 9, 30, 0, 0, time.UTC)

func fixedRecorder() *Recorder {
	return NewRecorderWithClock(func() time.Time { return fixedTime })
}

func testActor() domain.User {
	return domain.User{ID: "u-admin", FirstName: "Mara", LastName: "Lopez", Role: domain.RoleAdmin}
}

func testGoal() domain.Goal {
	return domain.Goal{
		ID:                 "g1",
		Title:              "Close 20 deals",
		Unit:               "deals",
		TargetValue:        20,
		GoalType:           domain.GoalTypeTarget,
		Comparison:         domain.ComparisonGreaterThan,
		CycleType:          domain.CycleMonthly,
		AssignedTo:         []string{"u-emp"},
		Status:             domain.StatusOnTrack,
		ProgressPercentage: 40,
	}
}

func TestGoalCreated(t *testing.T) {
	item := fixedRecorder().GoalCreated(testGoal(), testActor())
	if item.Type != domain.ActivityGoalCreated {
		t.Fatalf("unexpected type %s", item.Type)
	}
	if item.ID == "" {
		t.Fatalf("expected generated id")
	}
	if item.GoalID == nil || *item.GoalID != "g1" {
		t.Fatalf("expected goal reference")
	}
	if !item.Timestamp.Equal(fixedTime) {
		t.Fatalf("expected recording timestamp")
	}
	if item.Metadata["target_value"] != 20.0 {
		t.Fatalf("unexpected metadata: %+v", item.Metadata)
	}
}

func TestGoalEditedTrackedFields(t *testing.T) {
	oldGoal := testGoal()

	changed := oldGoal
	changed.TargetValue = 30
	changed.Comparison = domain.ComparisonLessThan
	item := fixedRecorder().GoalEdited(oldGoal, changed, testActor())
	if !strings.Contains(item.Description, "target changed from 20 to 30") {
		t.Fatalf("expected target diff in description: %s", item.Description)
	}
	if !strings.Contains(item.Description, "comparison changed from greater_than to less_than") {
		t.Fatalf("expected comparison diff in description: %s", item.Description)
	}

	// Changes to untracked fields are summarized generically.
	renamed := oldGoal
	renamed.Title = "Close 25 deals"
	renamed.Description = "stretch"
	item = fixedRecorder().GoalEdited(oldGoal, renamed, testActor())
	if !strings.Contains(item.Description, "details updated") {
		t.Fatalf("expected generic summary: %s", item.Description)
	}
}

func TestProgressUpdatedEmitsOneOrTwo(t *testing.T) {
	statuses := []domain.GoalStatus{domain.StatusOnTrack, domain.StatusAtRisk, domain.StatusOffTrack}
	recorder := fixedRecorder()
	comment := "slipping on renewals"

	for _, previous := range statuses {
		for _, submitted := range statuses {
			update := domain.ProgressUpdate{
				ID:       "p1",
				GoalID:   "g1",
				UserID:   "u-emp",
				NewValue: 8,
				Status:   submitted,
				Comment:  &comment,
			}
			items := recorder.ProgressUpdated(testGoal(), update, previous, testActor())

			want := 1
			if previous != submitted {
				want = 2
			}
			if len(items) != want {
				t.Fatalf("%s -> %s: expected %d items, got %d", previous, submitted, want, len(items))
			}
			if items[0].Type != domain.ActivityProgressUpdated {
				t.Fatalf("first item must be progress_updated, got %s", items[0].Type)
			}
			if want == 2 {
				second := items[1]
				if second.Type != domain.ActivityStatusChanged {
					t.Fatalf("second item must be status_changed, got %s", second.Type)
				}
				if second.Metadata["previous_status"] != string(previous) || second.Metadata["new_status"] != string(submitted) {
					t.Fatalf("status metadata missing: %+v", second.Metadata)
				}
				if second.Metadata["comment"] != comment {
					t.Fatalf("expected comment carried verbatim")
				}
			}
		}
	}
}

func TestProgressUpdatedMetadata(t *testing.T) {
	update := domain.ProgressUpdate{
		ID:       "p1",
		GoalID:   "g1",
		UserID:   "u-emp",
		NewValue: 8,
		Status:   domain.StatusOnTrack,
	}
	items := fixedRecorder().ProgressUpdated(testGoal(), update, domain.StatusOnTrack, testActor())
	metadata := items[0].Metadata
	for _, key := range []string{"progress_value", "target_value", "status", "previous_status", "progress_percentage", "has_comment"} {
		if _, ok := metadata[key]; !ok {
			t.Fatalf("missing metadata key %s", key)
		}
	}
	if metadata["has_comment"] != false {
		t.Fatalf("expected has_comment false without comment")
	}
}
