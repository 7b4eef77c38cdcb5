package seeds

import (
	"context"
	"errors"
	"log"
	"time"

	eventModel "campushub_backend/internals/features/events/model"
	eventRepo "campushub_backend/internals/features/events/repository"
	faqModel "campushub_backend/internals/features/home/faqs/model"
	faqRepo "campushub_backend/internals/features/home/faqs/repository"
	authHelper "campushub_backend/internals/features/users/auth/helper"
	userModel "campushub_backend/internals/features/users/user/model"
	userRepo "campushub_backend/internals/features/users/user/repository"
)

type userSeed struct {
	UserName string
	Email    string
	Password string
	Role     string
}

var demoUsers = []userSeed{
	{UserName: "Prof. Dina Hartono", Email: "dina.hartono@campus.test", Password: "teacher-demo-1", Role: "teacher"},
	{UserName: "Dr. Samuel Lim", Email: "samuel.lim@campus.test", Password: "teacher-demo-2", Role: "teacher"},
	{UserName: "Aisyah Putri", Email: "aisyah.putri@campus.test", Password: "student-demo-1", Role: "student"},
	{UserName: "Bram Wijaya", Email: "bram.wijaya@campus.test", Password: "student-demo-2", Role: "student"},
}

var demoFaqs = []faqModel.FaqModel{
	{FaqQuestion: "How do I register for an event?", FaqAnswer: "Open the event page and press Register before the deadline."},
	{FaqQuestion: "Can I cancel my registration?", FaqAnswer: "Yes, cancel from your registrations page any time before the event starts."},
	{FaqQuestion: "Who can publish events?", FaqAnswer: "Only teacher accounts can publish and manage events."},
}

// Run inserts demo users, events, and FAQs. Every step skips rows that
// already exist, so re-running is safe.
func Run(ctx context.Context, users userRepo.UserRepository, events eventRepo.EventRepository, faqs faqRepo.FaqRepository) error {
	log.Println("[SEED] Seeding demo data...")

	var firstTeacher *userModel.UserModel
	for _, in := range demoUsers {
		if existing, err := users.FindByEmail(ctx, in.Email); err == nil {
			log.Printf("[SEED] user %s already exists, skipped", in.Email)
			if firstTeacher == nil && existing.Role == "teacher" {
				firstTeacher = existing
			}
			continue
		}

		hashed, err := authHelper.HashPassword(in.Password)
		if err != nil {
			return err
		}
		u := userModel.UserModel{
			UserName: in.UserName,
			Email:    in.Email,
			Password: hashed,
			Role:     in.Role,
			IsActive: true,
		}
		if err := users.Create(ctx, &u); err != nil {
			return err
		}
		log.Printf("[SEED] user %s created", in.Email)
		if firstTeacher == nil && u.Role == "teacher" {
			firstTeacher = &u
		}
	}

	if firstTeacher != nil {
		if err := seedEvents(ctx, events, firstTeacher); err != nil {
			return err
		}
	}

	for i := range demoFaqs {
		f := demoFaqs[i]
		if err := faqs.Create(ctx, &f); err != nil {
			if errors.Is(err, faqRepo.ErrQuestionExists) {
				log.Printf("[SEED] faq %q already exists, skipped", f.FaqQuestion)
				continue
			}
			return err
		}
		log.Printf("[SEED] faq %q created", f.FaqQuestion)
	}

	log.Println("[SEED] Done.")
	return nil
}

func seedEvents(ctx context.Context, events eventRepo.EventRepository, teacher *userModel.UserModel) error {
	existing, _, err := events.List(ctx, eventRepo.ListFilter{TeacherID: teacher.ID})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Printf("[SEED] teacher %s already has events, skipped", teacher.Email)
		return nil
	}

	now := time.Now()
	demoEvents := []eventModel.EventModel{
		{
			EventTitle:            "Campus Orientation Week",
			EventDescription:      "Introduction to campus facilities, clubs, and study programs.",
			EventCategory:         "orientation",
			EventTeacherID:        teacher.ID,
			EventStartsAt:         now.AddDate(0, 0, 14),
			EventDeadline:         now.AddDate(0, 0, 10),
			EventParticipantLimit: 100,
		},
		{
			EventTitle:            "Go Programming Workshop",
			EventDescription:      "Hands-on workshop covering web services and testing.",
			EventCategory:         "workshop",
			EventTeacherID:        teacher.ID,
			EventStartsAt:         now.AddDate(0, 0, 21),
			EventDeadline:         now.AddDate(0, 0, 18),
			EventParticipantLimit: 30,
		},
	}
	for i := range demoEvents {
		if err := events.Create(ctx, &demoEvents[i]); err != nil {
			return err
		}
		log.Printf("[SEED] event %q created", demoEvents[i].EventTitle)
	}
	return nil
}
