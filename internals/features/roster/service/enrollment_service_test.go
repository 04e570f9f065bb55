package service

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	database "rollcall_backend/internals/databases"
	model "rollcall_backend/internals/features/roster/model"
)

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
	return db
}

func countRows(t *testing.T, db *gorm.DB, m interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(m).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestEnrollStudentCreatesSectionOnce(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	res, err := EnrollStudent(ctx, db, EnrollInput{
		Name: "Alice", Tag: "RFID1", Section: "CS-A", IDNumber: "S001",
	})
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if res.SectionName != "CS-A" {
		t.Errorf("section = %q, want CS-A", res.SectionName)
	}
	if res.Person.PersonRole != model.RoleStudent {
		t.Errorf("role = %q, want student", res.Person.PersonRole)
	}
	if n := countRows(t, db, &model.SectionModel{}); n != 1 {
		t.Fatalf("sections = %d, want 1", n)
	}

	// second enrollment into the same section must reuse the row
	if _, err := EnrollStudent(ctx, db, EnrollInput{
		Name: "Bob", Tag: "RFID2", Section: "CS-A", IDNumber: "S002",
	}); err != nil {
		t.Fatalf("second enroll: %v", err)
	}
	if n := countRows(t, db, &model.SectionModel{}); n != 1 {
		t.Errorf("sections = %d, want 1 after reuse", n)
	}
	if n := countRows(t, db, &model.StudentSectionLinkModel{}); n != 2 {
		t.Errorf("links = %d, want 2", n)
	}
}

func TestEnrollDuplicateTagRollsBack(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if _, err := EnrollStudent(ctx, db, EnrollInput{
		Name: "Alice", Tag: "RFID1", Section: "CS-A", IDNumber: "S001",
	}); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	_, err := EnrollStudent(ctx, db, EnrollInput{
		Name: "Bob", Tag: "RFID1", Section: "CS-B", IDNumber: "S002",
	})
	if !errors.Is(err, ErrDuplicateTag) {
		t.Fatalf("err = %v, want ErrDuplicateTag", err)
	}

	if n := countRows(t, db, &model.PersonModel{}); n != 1 {
		t.Errorf("persons = %d, want 1", n)
	}
	if n := countRows(t, db, &model.SectionModel{}); n != 1 {
		t.Errorf("sections = %d, want 1 (CS-B rolled back)", n)
	}
	if n := countRows(t, db, &model.StudentSectionLinkModel{}); n != 1 {
		t.Errorf("links = %d, want 1", n)
	}
}

func TestEnrollDuplicateIdentifier(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if _, err := EnrollStudent(ctx, db, EnrollInput{
		Name: "Alice", Tag: "RFID1", Section: "CS-A", IDNumber: "S001",
	}); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	_, err := EnrollStudent(ctx, db, EnrollInput{
		Name: "Bob", Tag: "RFID2", Section: "CS-A", IDNumber: "S001",
	})
	if !errors.Is(err, ErrDuplicateIdentifier) {
		t.Fatalf("err = %v, want ErrDuplicateIdentifier", err)
	}
}

func TestEnrollInvalidInputTouchesNoStorage(t *testing.T) {
	db := openTestDB(t)

	_, err := EnrollStudent(context.Background(), db, EnrollInput{
		Name: "  ", Tag: "RFID1", Section: "CS-A", IDNumber: "S001",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
	if n := countRows(t, db, &model.PersonModel{}); n != 0 {
		t.Errorf("persons = %d, want 0", n)
	}
	if n := countRows(t, db, &model.SectionModel{}); n != 0 {
		t.Errorf("sections = %d, want 0", n)
	}
}

func TestEnrollTeacherUsesTeacherRelation(t *testing.T) {
	db := openTestDB(t)

	res, err := EnrollTeacher(context.Background(), db, EnrollInput{
		Name: "Carol", Tag: "RFID9", Section: "CS-A", IDNumber: "T001",
	})
	if err != nil {
		t.Fatalf("enroll teacher: %v", err)
	}
	if res.Person.PersonRole != model.RoleTeacher {
		t.Errorf("role = %q, want teacher", res.Person.PersonRole)
	}
	if n := countRows(t, db, &model.TeacherSectionLinkModel{}); n != 1 {
		t.Errorf("teacher links = %d, want 1", n)
	}
	if n := countRows(t, db, &model.StudentSectionLinkModel{}); n != 0 {
		t.Errorf("student links = %d, want 0", n)
	}
}

// Constraint violations hit at commit time (race past the pre-check) must
// map to the same duplicate errors the pre-checks produce.
func TestClassifyEnrollError(t *testing.T) {
	cases := []struct {
		msg  string
		want error
	}{
		{`duplicate key value violates unique constraint "idx_persons_person_rfid_tag" (SQLSTATE 23505)`, ErrDuplicateTag},
		{`duplicate key value violates unique constraint "idx_persons_person_id_number" (SQLSTATE 23505)`, ErrDuplicateIdentifier},
		{`duplicate key value violates unique constraint "idx_sections_section_name" (SQLSTATE 23505)`, ErrSectionConflict},
		{`UNIQUE constraint failed: persons.person_rfid_tag`, ErrDuplicateTag},
	}
	for _, tc := range cases {
		if got := classifyEnrollError(errors.New(tc.msg)); !errors.Is(got, tc.want) {
			t.Errorf("classify(%q) = %v, want %v", tc.msg, got, tc.want)
		}
	}
}
