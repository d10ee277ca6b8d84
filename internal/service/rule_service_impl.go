package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/larderhq/larder/internal/domain"
	"github.com/larderhq/larder/internal/repository"
)

type ruleService struct {
	rules repository.DayRuleRepo
	tags  repository.TagRepo
}

func NewRuleService(rules repository.DayRuleRepo, tags repository.TagRepo) RuleService {
	return &ruleService{rules: rules, tags: tags}
}

func (s *ruleService) Set(ctx context.Context, dayOfWeek int, weekIndex *int, tagName string) (*domain.DayRule, error) {
	tagName = strings.TrimSpace(tagName)
	tag, err := s.tags.GetByName(ctx, tagName)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("tag %q does not exist; create it first", tagName)
	}
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rule := &domain.DayRule{
		DayOfWeek: dayOfWeek,
		WeekIndex: weekIndex,
		TagID:     tag.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.rules.Upsert(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *ruleService) List(ctx context.Context) ([]RuleWithTag, error) {
	rules, err := s.rules.List(ctx)
	if err != nil {
		return nil, err
	}
	tags, err := s.tags.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(tags))
	for _, t := range tags {
		names[t.ID] = t.Name
	}

	out := make([]RuleWithTag, 0, len(rules))
	for _, r := range rules {
		out = append(out, RuleWithTag{DayRule: r, TagName: names[r.TagID]})
	}
	return out, nil
}

func (s *ruleService) Clear(ctx context.Context, weekIndex *int, dayOfWeek int) error {
	return s.rules.DeleteBySlot(ctx, weekIndex, dayOfWeek)
}

func (s *ruleService) ClearAll(ctx context.Context) error {
	return s.rules.DeleteAll(ctx)
}
