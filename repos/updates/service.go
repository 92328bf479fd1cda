package updates

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	resend "github.com/resend/resend-go/v2"
	"github.com/samborkent/uuidv7"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
	"google.golang.org/api/iterator"

	"github.com/quintafc/team-sync/pkg/log"
	timehelper "github.com/quintafc/team-sync/pkg/timeHelper"
)

const updatesCollection = "Atualizacoes"

// ErrNotConfigured is returned when the remote backend credentials are
// missing and the repo is running as an inert mock.
var ErrNotConfigured = errors.New("updates backend is not configured")

// Service reads and writes the team's update posts in the remote backend.
// With a nil firestore client it degrades to a mock: List yields nothing and
// Publish is rejected with a configuration error.
type Service struct {
	firestoreClient *firestore.Client
	resendClient    *resend.Client
	mailList        []string
	hostURL         string
}

// NewService creates the updates repo. firestoreClient may be nil; resendKey
// and mailList may be empty, which disables the mail notification only.
func NewService(firestoreClient *firestore.Client, resendKey, hostURL string, mailList []string) *Service {
	var resendClient *resend.Client
	if resendKey != "" {
		resendClient = resend.NewClient(resendKey)
	}
	return &Service{
		firestoreClient: firestoreClient,
		resendClient:    resendClient,
		mailList:        mailList,
		hostURL:         hostURL,
	}
}

// Configured reports whether the remote backend is reachable at all.
func (s *Service) Configured() bool {
	return s.firestoreClient != nil
}

// Publish inserts a new update post and, when mail is configured, notifies
// the team list. Mail failure is logged and never fails the publish.
func (s *Service) Publish(ctx context.Context, request PublishRequest) (*Update, error) {
	if s.firestoreClient == nil {
		return nil, ErrNotConfigured
	}

	now := time.Now()
	update := Update{
		ID:          uuidv7.New().String(),
		Title:       strings.TrimSpace(request.Title),
		Description: strings.TrimSpace(request.Description),
		Author:      strings.TrimSpace(request.Author),
		Date:        timehelper.Timestamp(now),
		CreatedAt:   now,
	}

	_, err := s.firestoreClient.Collection(updatesCollection).Doc(update.ID).Set(ctx, update)
	if err != nil {
		return nil, xerrors.Errorf("failed to write update to Firestore: %w", err)
	}

	if s.resendClient != nil && len(s.mailList) > 0 {
		go s.sendMail(update)
	}

	return &update, nil
}

// List returns every update post, newest first.
func (s *Service) List(ctx context.Context) ([]Update, error) {
	if s.firestoreClient == nil {
		return nil, ErrNotConfigured
	}

	iter := s.firestoreClient.Collection(updatesCollection).Documents(ctx)
	defer iter.Stop()

	var posts []Update
	for {
		doc, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, xerrors.Errorf("failed to list updates: %w", err)
		}

		update, err := docToUpdate(doc)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *update)
	}

	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})

	return posts, nil
}

func docToUpdate(doc *firestore.DocumentSnapshot) (*Update, error) {
	var update Update
	if err := doc.DataTo(&update); err != nil {
		// If this fails, we have an inconsistency error as we control both the
		// data written to Firestore and the shape of our struct.
		return nil, fmt.Errorf(
			"consistency error. Converting %+v to internal update struct failed: %w",
			doc,
			err,
		)
	}
	return &update, nil
}

func (s *Service) sendMail(update Update) {
	params := &resend.SendEmailRequest{
		From:    "updates@resend.dev",
		To:      s.mailList,
		Subject: fmt.Sprintf("Nova atualização: %s", update.Title),
		Html:    getMailTemplate(update, s.hostURL),
	}

	if _, err := s.resendClient.Emails.Send(params); err != nil {
		log.Logger.Warn("failed to send update mail", zap.Error(err))
	}
}

func getMailTemplate(update Update, hostURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
    <div style="background-color: #ffffff; max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2>%s</h2>
        <p>%s</p>
        <p><em>— %s</em></p>
        <a href="%s">Abrir o painel</a>
    </div>
</body>
</html>`, update.Title, update.Description, update.Author, hostURL)
}
