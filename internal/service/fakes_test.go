package service

import (
	"context"
	"time"

	"contentgate/internal/model"
)

// In-memory collaborators used across the service tests.

type fakeMemberRepo struct {
	members map[string]*model.Member
	err     error
}

func (f *fakeMemberRepo) GetMemberByUserID(_ context.Context, userID string) (*model.Member, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.members[userID], nil
}

type fakeEnrollmentRepo struct {
	enrollments map[string]*model.Enrollment
	err         error
}

func (f *fakeEnrollmentRepo) GetEnrollmentByID(_ context.Context, enrollmentID string) (*model.Enrollment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.enrollments[enrollmentID], nil
}

type fakeLessonRepo struct {
	lessons map[string]*model.Lesson
	err     error
}

func (f *fakeLessonRepo) GetLessonByID(_ context.Context, lessonID string) (*model.Lesson, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.lessons[lessonID], nil
}

type fakeAccessLogRepo struct {
	entries []*model.AccessLogEntry
	err     error
}

func (f *fakeAccessLogRepo) InsertAccessLog(_ context.Context, entry *model.AccessLogEntry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

type fakeCertificateRepo struct {
	cert       *model.Certificate
	getErr     error
	updateErr  error
	updatedURL string
}

func (f *fakeCertificateRepo) GetCertificateByID(_ context.Context, _ string) (*model.Certificate, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.cert, nil
}

func (f *fakeCertificateRepo) UpdatePDFURL(_ context.Context, _, pdfURL string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updatedURL = pdfURL
	return nil
}

type fakeObjectStore struct {
	presignURL    string
	presignErr    error
	presignBucket string
	presignKey    string
	presignExpiry time.Duration

	downloadData  []byte
	downloadErr   error
	downloadCalls int

	uploads   map[string][]byte
	uploadErr error
}

func (f *fakeObjectStore) PresignGetURL(_ context.Context, bucket, key string, expiry time.Duration) (string, error) {
	f.presignBucket, f.presignKey, f.presignExpiry = bucket, key, expiry
	if f.presignErr != nil {
		return "", f.presignErr
	}
	return f.presignURL, nil
}

func (f *fakeObjectStore) Download(_ context.Context, _, _ string) ([]byte, error) {
	f.downloadCalls++
	if f.downloadErr != nil {
		return nil, f.downloadErr
	}
	return f.downloadData, nil
}

func (f *fakeObjectStore) Upload(_ context.Context, bucket, key, _ string, data []byte) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	if f.uploads == nil {
		f.uploads = make(map[string][]byte)
	}
	f.uploads[bucket+"/"+key] = data
	return nil
}

func (f *fakeObjectStore) PublicURL(bucket, key string) string {
	return "https://storage.test/" + bucket + "/" + key
}

type fakePublisher struct {
	topics   []string
	payloads [][]byte
	err      error
}

func (f *fakePublisher) Publish(_ context.Context, topic string, payload []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.topics = append(f.topics, topic)
	f.payloads = append(f.payloads, payload)
	return "msg-1", nil
}

// Baseline fixture: one active member with one active enrollment and one
// uploaded lesson in the enrolled course.

const (
	testUserID       = "user-1"
	testEnrollmentID = "enr-1"
	testCourseID     = "course-1"
	testLessonID     = "lesson-1"
)

func testMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: map[string]*model.Member{
		testUserID: {UserID: testUserID, Name: "Jordan Mills", FullName: "Jordan A. Mills", Email: "jordan@example.com"},
	}}
}

func testEnrollmentRepo(status string) *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{enrollments: map[string]*model.Enrollment{
		testEnrollmentID: {ID: testEnrollmentID, CourseID: testCourseID, UserID: testUserID, Status: status},
	}}
}

func testLessonRepo() *fakeLessonRepo {
	return &fakeLessonRepo{lessons: map[string]*model.Lesson{
		testLessonID: {
			ID:            testLessonID,
			CourseID:      testCourseID,
			Title:         "Module 1",
			ContentType:   "pdf",
			IsUploaded:    true,
			StorageBucket: "course-content",
			StoragePath:   "lessons/lesson-1.pdf",
		},
	}}
}
