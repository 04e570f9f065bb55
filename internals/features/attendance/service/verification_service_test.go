package service

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	database "rollcall_backend/internals/databases"
	model "rollcall_backend/internals/features/attendance/model"
	rosterService "rollcall_backend/internals/features/roster/service"
)

const testLocationID = 1

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Create(&model.LocationModel{LocationID: testLocationID, LocationRoom: "Main Hall"}).Error; err != nil {
		t.Fatalf("seed location: %v", err)
	}
	return db
}

func enrollStudent(t *testing.T, db *gorm.DB, name, tag, section, idNumber string) {
	t.Helper()
	_, err := rosterService.EnrollStudent(context.Background(), db, rosterService.EnrollInput{
		Name: name, Tag: tag, Section: section, IDNumber: idNumber,
	})
	if err != nil {
		t.Fatalf("enroll %s: %v", name, err)
	}
}

func eventCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&model.AttendanceEventModel{}).Count(&n).Error; err != nil {
		t.Fatalf("count events: %v", err)
	}
	return n
}

func TestVerifyBatchPartitionsTokens(t *testing.T) {
	db := openTestDB(t)
	enrollStudent(t, db, "Alice", "T1", "CS-A", "S001")

	res, err := VerifyBatch(context.Background(), db, []string{"T1", "T1", "T2"}, testLocationID)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	if res.TotalScans != 3 {
		t.Errorf("total = %d, want 3", res.TotalScans)
	}
	if len(res.Matched) != 1 {
		t.Fatalf("matched = %d, want 1", len(res.Matched))
	}
	m := res.Matched[0]
	if m.Name != "Alice" || m.Section != "CS-A" || m.Tag != "T1" || m.IDNumber != "S001" || m.Status != StatusPresent {
		t.Errorf("matched row = %+v", m)
	}
	if len(res.Unmatched) != 1 || res.Unmatched[0] != "T2" {
		t.Errorf("unmatched = %v, want [T2]", res.Unmatched)
	}

	// one event per matched person per call, duplicate token collapsed
	if n := eventCount(t, db); n != 1 {
		t.Errorf("events = %d, want 1", n)
	}
}

func TestVerifyUnmatchedKeepsOrderAndDuplicates(t *testing.T) {
	db := openTestDB(t)
	enrollStudent(t, db, "Alice", "T1", "CS-A", "S001")

	res, err := VerifyBatch(context.Background(), db, []string{"X9", "T1", "X9", "X8"}, testLocationID)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	want := []string{"X9", "X9", "X8"}
	if len(res.Unmatched) != len(want) {
		t.Fatalf("unmatched = %v, want %v", res.Unmatched, want)
	}
	for i := range want {
		if res.Unmatched[i] != want[i] {
			t.Fatalf("unmatched = %v, want %v", res.Unmatched, want)
		}
	}
	if len(res.Matched)+len(res.Unmatched) != res.TotalScans {
		t.Errorf("partition mismatch: %d + %d != %d",
			len(res.Matched), len(res.Unmatched), res.TotalScans)
	}
}

func TestVerifyNilTokensIsInvalid(t *testing.T) {
	db := openTestDB(t)

	_, err := VerifyBatch(context.Background(), db, nil, testLocationID)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
	if n := eventCount(t, db); n != 0 {
		t.Errorf("events = %d, want 0", n)
	}
}

func TestVerifyEmptyBatch(t *testing.T) {
	db := openTestDB(t)

	res, err := VerifyBatch(context.Background(), db, []string{}, testLocationID)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if res.TotalScans != 0 || len(res.Matched) != 0 || len(res.Unmatched) != 0 {
		t.Errorf("result = %+v, want empty", res)
	}
}

func TestVerifyUnlinkedStudentGetsUnknownSection(t *testing.T) {
	db := openTestDB(t)
	// person without a section link
	if err := db.Exec(
		`INSERT INTO persons (person_id, person_name, person_rfid_tag, person_id_number, person_role)
		 VALUES (?, ?, ?, ?, ?)`,
		"00000000-0000-0000-0000-000000000001", "Dana", "T7", "S007", "student",
	).Error; err != nil {
		t.Fatalf("insert person: %v", err)
	}

	res, err := VerifyBatch(context.Background(), db, []string{"T7"}, testLocationID)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if len(res.Matched) != 1 || res.Matched[0].Section != SectionUnknown {
		t.Errorf("matched = %+v, want section %q", res.Matched, SectionUnknown)
	}
}

func TestVerifyIgnoresTeacherTags(t *testing.T) {
	db := openTestDB(t)
	if _, err := rosterService.EnrollTeacher(context.Background(), db, rosterService.EnrollInput{
		Name: "Carol", Tag: "T9", Section: "CS-A", IDNumber: "T001",
	}); err != nil {
		t.Fatalf("enroll teacher: %v", err)
	}

	res, err := VerifyBatch(context.Background(), db, []string{"T9"}, testLocationID)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if len(res.Matched) != 0 || len(res.Unmatched) != 1 {
		t.Errorf("teacher tag matched: %+v", res)
	}
}

func TestVerifyRepeatedCallsAppendEvents(t *testing.T) {
	db := openTestDB(t)
	enrollStudent(t, db, "Alice", "T1", "CS-A", "S001")

	for i := 0; i < 2; i++ {
		if _, err := VerifyBatch(context.Background(), db, []string{"T1"}, testLocationID); err != nil {
			t.Fatalf("verify %d: %v", i, err)
		}
	}
	// no dedup window across calls
	if n := eventCount(t, db); n != 2 {
		t.Errorf("events = %d, want 2", n)
	}
}
