package services

import (
	"context"
	"errors"
	"testing"

	"github.com/EHB-MCT/forum-service/internal/events"
	"github.com/EHB-MCT/forum-service/internal/models"
	"github.com/EHB-MCT/forum-service/internal/validator"
)

func seedThreadWithAuthor(t *testing.T, env *testEnv) (*models.User, *models.Thread) {
	t.Helper()
	user := env.repo.seedUser(&models.User{Username: "jan", Email: "jan@ehb.be"})
	thread := env.repo.seedThread(&models.Thread{UserID: user.UserID, Title: "abc", Content: "long enough body"})
	return user, thread
}

func TestReplyService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("valid request", func(t *testing.T) {
		env := newTestEnv(t)
		user, thread := seedThreadWithAuthor(t, env)

		reply, err := env.replies.Create(ctx, thread.ThreadID, &validator.ReplyCreateRequest{
			Content: "have you tried composite tags?",
			UserID:  user.UserID,
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if reply.ReplyID == 0 || reply.ThreadID != thread.ThreadID {
			t.Errorf("unexpected reply: %+v", reply)
		}

		published := env.publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.EventReplyCreated {
			t.Fatalf("expected a single %s event, got %v", events.EventReplyCreated, published)
		}
	})

	t.Run("invalid content reported before missing author", func(t *testing.T) {
		env := newTestEnv(t)
		_, thread := seedThreadWithAuthor(t, env)

		_, err := env.replies.Create(ctx, thread.ThreadID, &validator.ReplyCreateRequest{Content: "x"})
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			t.Fatalf("expected ValidationErrors, got %v", err)
		}
		if verrs.Error() != "Invalid content." {
			t.Errorf("unexpected message: %q", verrs.Error())
		}
	})

	t.Run("missing author", func(t *testing.T) {
		env := newTestEnv(t)
		_, thread := seedThreadWithAuthor(t, env)

		_, err := env.replies.Create(ctx, thread.ThreadID, &validator.ReplyCreateRequest{Content: "valid content"})
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			t.Fatalf("expected ValidationErrors, got %v", err)
		}
		if verrs.Error() != "Missing required fields: user_id and content are required." {
			t.Errorf("unexpected message: %q", verrs.Error())
		}
	})

	t.Run("unknown thread", func(t *testing.T) {
		env := newTestEnv(t)
		user := env.repo.seedUser(&models.User{Username: "jan", Email: "jan@ehb.be"})

		_, err := env.replies.Create(ctx, 42, &validator.ReplyCreateRequest{
			Content: "valid content",
			UserID:  user.UserID,
		})
		if !errors.Is(err, ErrThreadNotFound) {
			t.Errorf("expected ErrThreadNotFound, got %v", err)
		}
	})
}

func TestReplyService_Listing(t *testing.T) {
	ctx := context.Background()

	t.Run("filters by thread and user", func(t *testing.T) {
		env := newTestEnv(t)
		jan, thread := seedThreadWithAuthor(t, env)
		piet := env.repo.seedUser(&models.User{Username: "piet", Email: "piet@ehb.be"})
		env.repo.seedReply(&models.Reply{UserID: jan.UserID, ThreadID: thread.ThreadID, Content: "one"})
		env.repo.seedReply(&models.Reply{UserID: piet.UserID, ThreadID: thread.ThreadID, Content: "two"})

		byThread, err := env.replies.ListByThread(ctx, thread.ThreadID)
		if err != nil {
			t.Fatalf("ListByThread failed: %v", err)
		}
		if len(byThread) != 2 {
			t.Errorf("expected 2 replies, got %d", len(byThread))
		}

		byUser, err := env.replies.ListByUser(ctx, piet.UserID)
		if err != nil {
			t.Fatalf("ListByUser failed: %v", err)
		}
		if len(byUser) != 1 || byUser[0].Content != "two" {
			t.Errorf("unexpected result: %+v", byUser)
		}

		both, err := env.replies.ListByThreadAndUser(ctx, thread.ThreadID, jan.UserID)
		if err != nil {
			t.Fatalf("ListByThreadAndUser failed: %v", err)
		}
		if len(both) != 1 || both[0].Content != "one" {
			t.Errorf("unexpected result: %+v", both)
		}
	})

	t.Run("existence checks run before listing", func(t *testing.T) {
		env := newTestEnv(t)
		_, thread := seedThreadWithAuthor(t, env)

		if _, err := env.replies.ListByThread(ctx, 42); !errors.Is(err, ErrThreadNotFound) {
			t.Errorf("expected ErrThreadNotFound, got %v", err)
		}
		if _, err := env.replies.ListByUser(ctx, 42); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
		if _, err := env.replies.ListByThreadAndUser(ctx, thread.ThreadID, 42); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
		if _, err := env.replies.ListByThreadAndUser(ctx, 42, 42); !errors.Is(err, ErrThreadNotFound) {
			t.Errorf("expected ErrThreadNotFound, got %v", err)
		}
	})
}

func TestReplyService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("content and correct applied", func(t *testing.T) {
		env := newTestEnv(t)
		user, thread := seedThreadWithAuthor(t, env)
		reply := env.repo.seedReply(&models.Reply{UserID: user.UserID, ThreadID: thread.ThreadID, Content: "old"})

		updated, err := env.replies.Update(ctx, reply.ReplyID, map[string]interface{}{
			"content": "new content",
			"correct": true,
		})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if updated.Content != "new content" || !updated.Correct {
			t.Errorf("unexpected result: %+v", updated)
		}
	})

	t.Run("unknown keys rejected", func(t *testing.T) {
		env := newTestEnv(t)
		user, thread := seedThreadWithAuthor(t, env)
		reply := env.repo.seedReply(&models.Reply{UserID: user.UserID, ThreadID: thread.ThreadID, Content: "old"})

		_, err := env.replies.Update(ctx, reply.ReplyID, map[string]interface{}{"thread_id": 1, "author": 2})
		ife, ok := AsInvalidFieldsError(err)
		if !ok {
			t.Fatalf("expected InvalidFieldsError, got %v", err)
		}
		if len(ife.Fields) != 2 || ife.Fields[0] != "author" || ife.Fields[1] != "thread_id" {
			t.Errorf("unexpected invalid fields: %v", ife.Fields)
		}
	})

	t.Run("empty update rejected", func(t *testing.T) {
		env := newTestEnv(t)
		user, thread := seedThreadWithAuthor(t, env)
		reply := env.repo.seedReply(&models.Reply{UserID: user.UserID, ThreadID: thread.ThreadID, Content: "old"})

		_, err := env.replies.Update(ctx, reply.ReplyID, map[string]interface{}{})
		if !errors.Is(err, ErrNoUpdateFields) {
			t.Errorf("expected ErrNoUpdateFields, got %v", err)
		}
	})

	t.Run("content must be a non-empty string", func(t *testing.T) {
		env := newTestEnv(t)
		user, thread := seedThreadWithAuthor(t, env)
		reply := env.repo.seedReply(&models.Reply{UserID: user.UserID, ThreadID: thread.ThreadID, Content: "old"})

		if _, err := env.replies.Update(ctx, reply.ReplyID, map[string]interface{}{"content": 42}); !errors.Is(err, ErrReplyContentNotString) {
			t.Errorf("expected ErrReplyContentNotString, got %v", err)
		}
		if _, err := env.replies.Update(ctx, reply.ReplyID, map[string]interface{}{"content": "   "}); !errors.Is(err, ErrReplyContentNotString) {
			t.Errorf("expected ErrReplyContentNotString for blank content, got %v", err)
		}
	})

	t.Run("correct must be a boolean", func(t *testing.T) {
		env := newTestEnv(t)
		user, thread := seedThreadWithAuthor(t, env)
		reply := env.repo.seedReply(&models.Reply{UserID: user.UserID, ThreadID: thread.ThreadID, Content: "old"})

		_, err := env.replies.Update(ctx, reply.ReplyID, map[string]interface{}{"correct": "yes"})
		if !errors.Is(err, ErrCorrectNotBool) {
			t.Errorf("expected ErrCorrectNotBool, got %v", err)
		}
	})

	t.Run("unknown reply", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.replies.Update(ctx, 42, map[string]interface{}{"content": "ghost"})
		if !errors.Is(err, ErrReplyNotFound) {
			t.Errorf("expected ErrReplyNotFound, got %v", err)
		}
	})
}

func TestReplyService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes reply", func(t *testing.T) {
		env := newTestEnv(t)
		user, thread := seedThreadWithAuthor(t, env)
		reply := env.repo.seedReply(&models.Reply{UserID: user.UserID, ThreadID: thread.ThreadID, Content: "ok"})

		if err := env.replies.Delete(ctx, reply.ReplyID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := env.replies.GetByID(ctx, reply.ReplyID); !errors.Is(err, ErrReplyNotFound) {
			t.Errorf("expected reply to be gone, got %v", err)
		}
	})

	t.Run("unknown reply", func(t *testing.T) {
		env := newTestEnv(t)

		if err := env.replies.Delete(ctx, 42); !errors.Is(err, ErrReplyNotFound) {
			t.Errorf("expected ErrReplyNotFound, got %v", err)
		}
	})
}
