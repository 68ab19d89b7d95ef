// Package safety provides safety validation implementations
package safety

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/continuum-run/continuum/pkg/monitoring/iface"
	"github.com/continuum-run/continuum/pkg/monitoring/internal/logger"
)

// SafetyChecker provides safety and ethical checks for AI operations.
type SafetyChecker struct {
	logger           *logger.StructuredLogger
	humanInLoop      *HumanInLoop
	toxicityPatterns []*regexp.Regexp
	biasPatterns     []*regexp.Regexp
	harmfulPatterns  []*regexp.Regexp
}

// HumanInLoop provides human oversight capabilities.
type HumanInLoop struct {
	reviewQueue      chan *ReviewRequest
	logger           *logger.StructuredLogger
	reviewers        []Reviewer
	reviewThreshold  float64
	autoApproveBelow float64
}

// ReviewRequest represents a request for human review.
type ReviewRequest struct {
	Timestamp    time.Time
	ResponseChan chan iface.ReviewDecision
	ID           string
	Content      string
	Context      string
	RiskScore    float64
}

// Reviewer represents a human reviewer.
type Reviewer interface {
	Review(ctx context.Context, request *ReviewRequest) (iface.ReviewDecision, error)
	GetID() string
}

// NewSafetyChecker creates a new safety checker.
func NewSafetyChecker(logger *logger.StructuredLogger) *SafetyChecker {
	sc := &SafetyChecker{
		logger:      logger,
		humanInLoop: NewHumanInLoop(logger),
	}

	// Initialize safety patterns
	sc.initializePatterns()

	return sc
}

// NewHumanInLoop creates a new human-in-the-loop system.
func NewHumanInLoop(logger *logger.StructuredLogger) *HumanInLoop {
	hil := &HumanInLoop{
		reviewThreshold:  0.7, // Review if risk score > 0.7
		autoApproveBelow: 0.3, // Auto-approve if risk score < 0.3
		reviewQueue:      make(chan *ReviewRequest, 100),
		logger:           logger,
	}

	// Start the review processor
	go hil.processReviews()

	return hil
}

// initializePatterns sets up safety and bias detection patterns.
func (sc *SafetyChecker) initializePatterns() {
	// Toxicity patterns
	sc.toxicityPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(hate|kill|murder|violence|terror)`),
		regexp.MustCompile(`(?i)(racist|sexist|homophobic|transphobic)`),
		regexp.MustCompile(`(?i)(suicide|self-harm|depression)`),
	}

	// Bias patterns
	sc.biasPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(all (men|women|people) are|everyone knows)`),
		regexp.MustCompile(`(?i)(typical|normal|average) (man|woman|person)`),
		regexp.MustCompile(`(?i)(obviously|clearly|of course)`),
	}

	// Harmful patterns
	sc.harmfulPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(how to|tutorial|guide).*(hack|exploit|crack)`),
		regexp.MustCompile(`(?i)(illegal|illicit|forbidden).*(activity|method|technique)`),
		regexp.MustCompile(`(?i)(manufacture|build|make).*(weapon|bomb|explosive)`),
	}
}

// CheckContent performs safety and ethical checks on content.
func (sc *SafetyChecker) CheckContent(ctx context.Context, content, contextInfo string) (iface.SafetyResult, error) {
	result := iface.SafetyResult{
		Content:   content,
		Safe:      true,
		RiskScore: 0.0,
		Issues:    make([]iface.SafetyIssue, 0),
		Timestamp: time.Now(),
	}

	// Check for toxicity
	if issues := sc.checkPatterns(content, sc.toxicityPatterns, "toxicity"); len(issues) > 0 {
		result.Issues = append(result.Issues, issues...)
		result.RiskScore += 0.4
	}

	// Check for bias
	if issues := sc.checkPatterns(content, sc.biasPatterns, "bias"); len(issues) > 0 {
		result.Issues = append(result.Issues, issues...)
		result.RiskScore += 0.2
	}

	// Check for harmful content
	if issues := sc.checkPatterns(content, sc.harmfulPatterns, "harmful"); len(issues) > 0 {
		result.Issues = append(result.Issues, issues...)
		result.RiskScore += 0.5
	}

	// Additional context-based checks
	if strings.Contains(strings.ToLower(contextInfo), "medical") && result.RiskScore > 0.1 {
		result.Issues = append(result.Issues, iface.SafetyIssue{
			Type:        "context_risk",
			Description: "Medical context with potential safety concerns",
			Severity:    "medium",
		})
		result.RiskScore += 0.1
	}

	result.Safe = result.RiskScore < 0.3

	// Log the safety check
	sc.logger.Info(ctx, "Safety check completed",
		map[string]any{
			"safe":       result.Safe,
			"risk_score": result.RiskScore,
			"issues":     len(result.Issues),
		})

	return result, nil
}

// checkPatterns checks content against a set of regex patterns.
func (sc *SafetyChecker) checkPatterns(content string, patterns []*regexp.Regexp, issueType string) []iface.SafetyIssue {
	issues := make([]iface.SafetyIssue, 0)

	for _, pattern := range patterns {
		if matches := pattern.FindAllString(content, -1); len(matches) > 0 {
			issues = append(issues, iface.SafetyIssue{
				Type:        issueType,
				Description: fmt.Sprintf("Detected %s pattern: %v", issueType, matches),
				Severity:    sc.getSeverity(issueType),
			})
		}
	}

	return issues
}

// getSeverity returns the severity level for an issue type.
func (sc *SafetyChecker) getSeverity(issueType string) string {
	switch issueType {
	case "toxicity", "harmful":
		return "high"
	case "bias":
		return "medium"
	default:
		return "low"
	}
}

// RequestHumanReview requests human review for high-risk content.
func (sc *SafetyChecker) RequestHumanReview(ctx context.Context, content, contextInfo string, riskScore float64) (iface.ReviewDecision, error) {
	request := &ReviewRequest{
		ID:           fmt.Sprintf("review-%d", time.Now().UnixNano()),
		Content:      content,
		Context:      contextInfo,
		RiskScore:    riskScore,
		Timestamp:    time.Now(),
		ResponseChan: make(chan iface.ReviewDecision, 1),
	}

	// Send to human review queue
	select {
	case sc.humanInLoop.reviewQueue <- request:
		sc.logger.Info(ctx, "Content sent for human review",
			map[string]any{
				"request_id": request.ID,
				"risk_score": riskScore,
			})
	case <-ctx.Done():
		return iface.ReviewDecision{}, ctx.Err()
	default:
		return iface.ReviewDecision{}, errors.New("human review queue is full")
	}

	// Wait for review decision
	select {
	case decision := <-request.ResponseChan:
		return decision, nil
	case <-ctx.Done():
		return iface.ReviewDecision{}, ctx.Err()
	case <-time.After(5 * time.Minute): // Timeout after 5 minutes
		return iface.ReviewDecision{}, errors.New("human review timeout")
	}
}

// processReviews processes human review requests.
func (hil *HumanInLoop) processReviews() {
	for request := range hil.reviewQueue {
		ctx := context.Background()

		// Auto-approve low-risk content
		if request.RiskScore < hil.autoApproveBelow {
			decision := iface.ReviewDecision{
				Approved:   true,
				ReviewerID: "auto-approve",
				Comments:   "Auto-approved due to low risk score",
				Timestamp:  time.Now(),
			}
			request.ResponseChan <- decision
			continue
		}

		// For now, simulate human review (in production, this would integrate with actual human reviewers)
		decision := hil.simulateHumanReview(request)

		select {
		case request.ResponseChan <- decision:
		default:
			hil.logger.Warning(ctx, "Failed to send review decision - channel full",
				map[string]any{"request_id": request.ID})
		}
	}
}

// simulateHumanReview simulates human review (replace with actual human review system).
func (hil *HumanInLoop) simulateHumanReview(request *ReviewRequest) iface.ReviewDecision {
	// Simple simulation: approve if risk score < 0.8
	approved := request.RiskScore < 0.8

	decision := iface.ReviewDecision{
		Approved:   approved,
		ReviewerID: "simulated-reviewer",
		Comments:   fmt.Sprintf("Review completed - risk score: %.2f", request.RiskScore),
		Timestamp:  time.Now(),
	}

	if !approved {
		decision.Comments += " - Content flagged for manual review due to high risk"
	}

	return decision
}

// AddReviewer adds a human reviewer to the system.
func (hil *HumanInLoop) AddReviewer(reviewer Reviewer) {
	hil.reviewers = append(hil.reviewers, reviewer)
}

// EthicalFilter provides ethical filtering capabilities.
type EthicalFilter struct {
	logger *logger.StructuredLogger
}

// NewEthicalFilter creates a new ethical filter.
func NewEthicalFilter(logger *logger.StructuredLogger) *EthicalFilter {
	return &EthicalFilter{logger: logger}
}

// FilterContent applies ethical filtering to content.
func (ef *EthicalFilter) FilterContent(ctx context.Context, content string) (string, error) {
	// Basic ethical filtering - in production, this would be more sophisticated
	filtered := content

	// Remove or replace sensitive terms
	sensitiveTerms := map[string]string{
		"hack":    "modify",
		"exploit": "utilize",
		"crack":   "access",
	}

	for term, replacement := range sensitiveTerms {
		filtered = strings.ReplaceAll(filtered, term, replacement)
	}

	if filtered != content {
		ef.logger.Info(ctx, "Content filtered for ethical reasons",
			map[string]any{
				"original_length": len(content),
				"filtered_length": len(filtered),
			})
	}

	return filtered, nil
}

// ConcurrencyLimiter provides concurrency limiting.
type ConcurrencyLimiter struct {
	semaphore     chan struct{}
	maxConcurrent int
}

// NewConcurrencyLimiter creates a new concurrency limiter.
func NewConcurrencyLimiter(maxConcurrent int) *ConcurrencyLimiter {
	return &ConcurrencyLimiter{
		semaphore:     make(chan struct{}, maxConcurrent),
		maxConcurrent: maxConcurrent,
	}
}

// Execute executes a function with concurrency limiting.
func (cl *ConcurrencyLimiter) Execute(ctx context.Context, fn func() error) error {
	select {
	case cl.semaphore <- struct{}{}:
		defer func() { <-cl.semaphore }()
		return fn()
	case <-ctx.Done():
		return ctx.Err()
	default:
		return fmt.Errorf("concurrency limit exceeded (%d)", cl.maxConcurrent)
	}
}

// GetCurrentConcurrency returns the current number of concurrent operations.
func (cl *ConcurrencyLimiter) GetCurrentConcurrency() int {
	return len(cl.semaphore)
}
