package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ludo-technologies/eacdiff/domain"
	"github.com/ludo-technologies/eacdiff/internal/comparer"
	"github.com/ludo-technologies/eacdiff/internal/match"
	"github.com/ludo-technologies/eacdiff/internal/parser"
	"github.com/ludo-technologies/eacdiff/internal/syntax"
	"github.com/ludo-technologies/eacdiff/internal/version"
)

// CompareServiceImpl implements the CompareService interface. Members of the
// two versions are paired by signature and their bodies matched statement
// by statement.
type CompareServiceImpl struct {
	fileReader    domain.FileReader
	parseCache    *ParseCache
	snippetLength int
	now           func() time.Time
}

// NewCompareService creates a new compare service reading files from disk
func NewCompareService() *CompareServiceImpl {
	return NewCompareServiceWithReader(NewFileReader())
}

// NewCompareServiceWithReader creates a compare service using reader for
// requests that name paths without sources
func NewCompareServiceWithReader(reader domain.FileReader) *CompareServiceImpl {
	return &CompareServiceImpl{
		fileReader:    reader,
		snippetLength: domain.DefaultSnippetLength,
		now:           time.Now,
	}
}

// SetParseCache makes the service reuse trees parsed ahead of time
func (s *CompareServiceImpl) SetParseCache(cache *ParseCache) {
	s.parseCache = cache
}

// Compare compares the members of the old and new versions of a file
func (s *CompareServiceImpl) Compare(ctx context.Context, req domain.CompareRequest) (*domain.CompareResponse, error) {
	oldRoot, err := s.load(ctx, req.OldPath, req.OldSource, "old")
	if err != nil {
		return nil, err
	}
	newRoot, err := s.load(ctx, req.NewPath, req.NewSource, "new")
	if err != nil {
		return nil, err
	}

	response := &domain.CompareResponse{
		OldPath:     req.OldPath,
		NewPath:     req.NewPath,
		GeneratedAt: s.now().Format(time.RFC3339),
		Version:     version.Version,
		Summary:     domain.CompareSummary{EditCounts: make(map[domain.EditKind]int)},
	}

	oldMembers := parser.Members(oldRoot)
	newMembers := parser.Members(newRoot)
	response.Warnings = append(response.Warnings, duplicateWarnings("old", oldMembers)...)
	response.Warnings = append(response.Warnings, duplicateWarnings("new", newMembers)...)

	opts := match.Options{
		Levels:         req.DistanceLevels,
		MaxLambdaDepth: req.MaxLambdaDepth,
	}

	newByKey := make(map[string]int, len(newMembers))
	for i, key := range memberKeys(newMembers) {
		newByKey[key] = i
	}
	pairedNew := make([]bool, len(newMembers))

	for i, key := range memberKeys(oldMembers) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		oldMember := oldMembers[i]
		j, ok := newByKey[key]
		if !ok {
			s.record(response, req, domain.MemberDiff{
				Name:      oldMember.Name,
				Signature: oldMember.Signature,
				Kind:      string(oldMember.Kind),
				Status:    domain.MemberStatusDeleted,
				Old:       s.nodeRef(oldMember.Node),
			})
			continue
		}
		pairedNew[j] = true

		diff, err := s.compareMember(oldMember, newMembers[j], opts)
		if err != nil {
			response.Errors = append(response.Errors, err.Error())
		}
		s.record(response, req, diff)
	}

	for j, newMember := range newMembers {
		if pairedNew[j] {
			continue
		}
		s.record(response, req, domain.MemberDiff{
			Name:      newMember.Name,
			Signature: newMember.Signature,
			Kind:      string(newMember.Kind),
			Status:    domain.MemberStatusInserted,
			New:       s.nodeRef(newMember.Node),
		})
	}

	if len(oldMembers) == 0 && len(newMembers) == 0 {
		response.Warnings = append(response.Warnings, "no members with a body found")
	}

	return response, nil
}

// load returns the syntax tree of one version: the given source, a cached
// tree, or the file at path
func (s *CompareServiceImpl) load(ctx context.Context, path string, source []byte, side string) (*syntax.Node, error) {
	if source == nil {
		if path == "" {
			return nil, domain.NewInvalidInputError(fmt.Sprintf("no %s source or path given", side), nil)
		}
		if cached, ok := s.parseCache.Get(path); ok {
			if cached.ParseErr != nil {
				return nil, cachedError(path, cached.ParseErr)
			}
			return cached.Root, nil
		}
		content, err := s.fileReader.ReadFile(path)
		if err != nil {
			return nil, err
		}
		source = content
	}

	file := path
	if file == "" {
		file = "<" + side + ">"
	}
	root, err := parser.New().ParseSyntax(ctx, source, file)
	if err != nil {
		return nil, domain.NewParseError(file, err)
	}
	return root, nil
}

// cachedError gives a failure recorded in the parse cache the domain code
// a fresh parse would report. Coded errors, such as missing files, keep
// their code.
func cachedError(path string, err error) error {
	if domain.ErrorCode(err) != "" {
		return err
	}
	return domain.NewParseError(path, err)
}

// compareMember compares the bodies of a member pair. A broken comparer
// invariant fails this member only.
func (s *CompareServiceImpl) compareMember(oldMember, newMember parser.Member, opts match.Options) (diff domain.MemberDiff, err error) {
	diff = domain.MemberDiff{
		Name:      newMember.Name,
		Signature: newMember.Signature,
		Kind:      string(newMember.Kind),
		Old:       s.nodeRef(oldMember.Node),
		New:       s.nodeRef(newMember.Node),
	}

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		cause, ok := r.(error)
		if !ok {
			cause = fmt.Errorf("%v", r)
		}
		if errors.Is(cause, comparer.ErrInvariantBroken) {
			err = domain.NewInvariantError(newMember.Signature, cause)
		} else {
			err = domain.NewAnalysisError(fmt.Sprintf("comparison of %s failed", newMember.Signature), cause)
		}
		diff.Status = domain.MemberStatusFailed
		diff.Edits = nil
		diff.Lambdas = nil
		diff.Error = err.Error()
	}()

	body := match.CompareBodies(oldMember.Body, newMember.Body, opts)

	diff.StructuralDistance = body.Distance
	diff.Edits = s.convertEdits(body.Edits)
	diff.Lambdas = s.convertLambdas(body.Lambdas)
	if body.Unchanged() {
		diff.Status = domain.MemberStatusUnchanged
	} else {
		diff.Status = domain.MemberStatusModified
	}
	return diff, nil
}

// record adds a member to the summary and, unless it is unchanged and
// unchanged members are hidden, to the response
func (s *CompareServiceImpl) record(response *domain.CompareResponse, req domain.CompareRequest, diff domain.MemberDiff) {
	summary := &response.Summary
	summary.TotalMembers++

	switch diff.Status {
	case domain.MemberStatusModified:
		summary.ModifiedMembers++
	case domain.MemberStatusUnchanged:
		summary.UnchangedMembers++
	case domain.MemberStatusInserted:
		summary.InsertedMembers++
	case domain.MemberStatusDeleted:
		summary.DeletedMembers++
	case domain.MemberStatusFailed:
		summary.FailedMembers++
	}
	countEdits(summary, diff.Edits, diff.Lambdas)

	if diff.Status == domain.MemberStatusUnchanged && !req.ShowUnchanged {
		return
	}
	response.Members = append(response.Members, diff)
}

func countEdits(summary *domain.CompareSummary, edits []domain.SyntaxEdit, lambdas []domain.LambdaDiff) {
	for _, edit := range edits {
		summary.TotalEdits++
		summary.EditCounts[edit.Kind]++
	}
	for _, lambda := range lambdas {
		countEdits(summary, lambda.Edits, lambda.Lambdas)
	}
}

func (s *CompareServiceImpl) convertEdits(edits []match.Edit) []domain.SyntaxEdit {
	if len(edits) == 0 {
		return nil
	}
	converted := make([]domain.SyntaxEdit, len(edits))
	for i, edit := range edits {
		converted[i] = domain.SyntaxEdit{
			Kind:     domain.EditKind(edit.Kind.String()),
			Old:      s.nodeRef(edit.Old),
			New:      s.nodeRef(edit.New),
			Distance: edit.Distance,
		}
	}
	return converted
}

func (s *CompareServiceImpl) convertLambdas(lambdas []match.LambdaDiff) []domain.LambdaDiff {
	if len(lambdas) == 0 {
		return nil
	}
	converted := make([]domain.LambdaDiff, 0, len(lambdas))
	for _, lambda := range lambdas {
		converted = append(converted, domain.LambdaDiff{
			Old:                s.nodeRef(lambda.Old),
			New:                s.nodeRef(lambda.New),
			StructuralDistance: lambda.Body.Distance,
			Edits:              s.convertEdits(lambda.Body.Edits),
			Lambdas:            s.convertLambdas(lambda.Body.Lambdas),
		})
	}
	return converted
}

func (s *CompareServiceImpl) nodeRef(n *syntax.Node) *domain.NodeRef {
	if n == nil {
		return nil
	}
	ref := &domain.NodeRef{
		Kind:      string(n.Kind),
		StartLine: n.Location.StartLine,
		StartCol:  n.Location.StartCol,
		EndLine:   n.Location.EndLine,
		EndCol:    n.Location.EndCol,
		Snippet:   Snippet(n, s.snippetLength),
	}
	if label := comparer.GetLabelOf(n); label != comparer.LabelIgnored {
		ref.Label = label.String()
	}
	return ref
}

// memberKeys returns the pairing key of each member: its signature, with
// an occurrence suffix for repeated signatures
func memberKeys(members []parser.Member) []string {
	seen := make(map[string]int, len(members))
	keys := make([]string, len(members))
	for i, member := range members {
		n := seen[member.Signature]
		seen[member.Signature] = n + 1
		keys[i] = member.Signature
		if n > 0 {
			keys[i] = fmt.Sprintf("%s#%d", member.Signature, n)
		}
	}
	return keys
}

func duplicateWarnings(side string, members []parser.Member) []string {
	counts := make(map[string]int, len(members))
	var order []string
	for _, member := range members {
		if counts[member.Signature] == 0 {
			order = append(order, member.Signature)
		}
		counts[member.Signature]++
	}

	var warnings []string
	for _, signature := range order {
		if n := counts[signature]; n > 1 {
			warnings = append(warnings, fmt.Sprintf("%s version declares %s %d times; paired in source order", side, signature, n))
		}
	}
	return warnings
}

// Snippet renders the tokens of n as source-like text of at most limit
// runes
func Snippet(n *syntax.Node, limit int) string {
	var sb strings.Builder
	var prev string
	for _, tok := range n.DescendantTokens() {
		if prev != "" && spaceBetween(prev, tok.Text) {
			sb.WriteByte(' ')
		}
		sb.WriteString(tok.Text)
		prev = tok.Text
	}

	text := sb.String()
	if limit > 0 && utf8.RuneCountInString(text) > limit {
		runes := []rune(text)
		return string(runes[:limit]) + "..."
	}
	return text
}

func spaceBetween(prev, next string) bool {
	switch next {
	case ")", "]", ";", ",", ".", "(", "[", "?.":
		return false
	case "++", "--":
		return !isWordEnd(prev)
	}
	switch prev {
	case "(", "[", ".", "!", "~", "?.":
		return false
	}
	return true
}

func isWordEnd(text string) bool {
	r, _ := utf8.DecodeLastRuneInString(text)
	return r == '_' || r == ')' || r == ']' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9')
}
