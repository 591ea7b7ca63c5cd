package services

import (
	"context"
	"fmt"
	"log"

	"exale/model"

	recaptcha "cloud.google.com/go/recaptchaenterprise/v2/apiv1"
	"cloud.google.com/go/recaptchaenterprise/v2/apiv1/recaptchaenterprisepb"
	"google.golang.org/api/option"
)

const minCaptchaScore = 0.5

type AssessmentResult struct {
	Score   float32
	Action  string
	Reasons []string
}

// Assessor scores a captcha token. A nil result means the token was not
// accepted.
type Assessor interface {
	Assess(ctx context.Context, token, action, userIP, userAgent string) (*AssessmentResult, error)
}

type RecaptchaAssessor struct {
	projectID       string
	siteKey         string
	credentialsFile string
}

func NewRecaptchaAssessor(projectID, siteKey, credentialsFile string) *RecaptchaAssessor {
	return &RecaptchaAssessor{projectID: projectID, siteKey: siteKey, credentialsFile: credentialsFile}
}

func (r *RecaptchaAssessor) Assess(ctx context.Context, token, action, userIP, userAgent string) (*AssessmentResult, error) {
	var opts []option.ClientOption
	if r.credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(r.credentialsFile))
	}
	client, err := recaptcha.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating reCAPTCHA client: %w", err)
	}
	defer client.Close()

	response, err := client.CreateAssessment(ctx, &recaptchaenterprisepb.CreateAssessmentRequest{
		Parent: fmt.Sprintf("projects/%s", r.projectID),
		Assessment: &recaptchaenterprisepb.Assessment{
			Event: &recaptchaenterprisepb.Event{
				Token:         token,
				SiteKey:       r.siteKey,
				UserIpAddress: userIP,
				UserAgent:     userAgent,
			},
		},
	})
	if err != nil {
		return nil, err
	}

	if response.TokenProperties == nil || !response.TokenProperties.Valid {
		if response.TokenProperties != nil {
			log.Printf("captcha token invalid: %s", response.TokenProperties.InvalidReason)
		}
		return nil, nil
	}
	if action != "" && response.TokenProperties.Action != action {
		log.Printf("captcha action mismatch: expected %s, got %s", action, response.TokenProperties.Action)
		return nil, nil
	}

	result := &AssessmentResult{Action: response.TokenProperties.Action}
	if response.RiskAnalysis != nil {
		result.Score = response.RiskAnalysis.Score
		for _, reason := range response.RiskAnalysis.Reasons {
			result.Reasons = append(result.Reasons, reason.String())
		}
	}
	return result, nil
}

// IntakeService files requests sent from the public site.
type IntakeService struct {
	tasks    *TaskService
	assessor Assessor
}

// NewIntakeService takes a nil assessor when captcha checks are disabled.
func NewIntakeService(tasks *TaskService, assessor Assessor) *IntakeService {
	return &IntakeService{tasks: tasks, assessor: assessor}
}

type IntakeRequest struct {
	Title        string
	Company      string
	Email        string
	Phone        string
	Message      string
	Priority     int
	CaptchaToken string
	UserIP       string
	UserAgent    string
}

func (i *IntakeService) Submit(ctx context.Context, req IntakeRequest) (string, error) {
	if i.assessor != nil {
		if req.CaptchaToken == "" {
			return "", invalid("Captcha token is required")
		}
		result, err := i.assessor.Assess(ctx, req.CaptchaToken, "intake", req.UserIP, req.UserAgent)
		if err != nil {
			return "", fmt.Errorf("verifying captcha: %w", err)
		}
		if result == nil || result.Score < minCaptchaScore {
			return "", forbidden("reCAPTCHA verification failed")
		}
	}
	return i.tasks.Create(ctx, model.Task{
		Title:    req.Title,
		Company:  req.Company,
		Email:    req.Email,
		Phone:    req.Phone,
		Message:  req.Message,
		Priority: req.Priority,
	})
}
