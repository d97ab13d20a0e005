package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/jobmatch/internal/cache"
	"github.com/jonathan/jobmatch/internal/recommender"
	"github.com/jonathan/jobmatch/internal/types"
)

// MatchRequest is the body of POST /api/match. Weights need not sum to
// 1; callers wanting a convex combination must enforce that themselves.
type MatchRequest struct {
	ResumeText   string   `json:"resume_text"`
	UserID       string   `json:"user_id" validate:"omitempty,uuid4"`
	WeightTFIDF  *float64 `json:"weight_tfidf" validate:"omitempty,gte=0"`
	WeightSkills *float64 `json:"weight_skills" validate:"omitempty,gte=0"`
	TopK         *int     `json:"top_k"`
}

// MatchItem is one ranked job in a match response.
type MatchItem struct {
	ID       uuid.UUID `json:"id"`
	JobID    string    `json:"job_id"`
	Title    string    `json:"title"`
	Company  string    `json:"company"`
	Location string    `json:"location"`
	Skills   string    `json:"skills"`
	Score    float64   `json:"score"`
}

// MatchResponse is the body of a successful match call.
type MatchResponse struct {
	Items []MatchItem `json:"items"`
}

// handleMatch ranks the corpus against resume text, either inline or
// loaded from a stored user.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	weightTFIDF, weightSkills, topK := s.matchDefaults()
	if req.WeightTFIDF != nil {
		weightTFIDF = *req.WeightTFIDF
	}
	if req.WeightSkills != nil {
		weightSkills = *req.WeightSkills
	}
	if req.TopK != nil {
		topK = *req.TopK
	}
	if topK <= 0 {
		err := &ErrInput{Message: "top_k must be positive"}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	resumeText, err := s.resolveResumeText(ctx, &req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	engine := s.currentEngine()
	if engine == nil {
		err := &recommender.CorpusError{Reason: "no jobs loaded"}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	key := cache.Key(engine.CorpusVersion(), resumeText, weightTFIDF, weightSkills, topK)
	if cached, err := s.cache.Get(ctx, key); err != nil {
		log.Printf("Match cache read failed: %v", err)
	} else if cached != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(cached); err != nil {
			log.Printf("Failed to write cached response: %v", err)
		}
		return
	}

	ranked := engine.Recommend(resumeText, topK, weightTFIDF, weightSkills)
	resp := MatchResponse{Items: make([]MatchItem, 0, len(ranked))}
	for _, scored := range ranked {
		rowID, err := s.db.GetJobRowID(ctx, scored.Job.JobID)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
			return
		}
		resp.Items = append(resp.Items, MatchItem{
			ID:       rowID,
			JobID:    scored.Job.JobID,
			Title:    scored.Job.Title,
			Company:  scored.Job.Company,
			Location: scored.Job.Location,
			Skills:   types.JoinSkills(scored.Job.Skills),
			Score:    scored.Score,
		})
	}

	payload, err := json.Marshal(resp)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to encode response")
		return
	}
	if err := s.cache.Set(ctx, key, payload); err != nil {
		log.Printf("Match cache write failed: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload); err != nil {
		log.Printf("Failed to write match response: %v", err)
	}
}

// matchDefaults returns the configured ranking defaults, falling back
// to the engine defaults when the server config leaves them unset.
func (s *Server) matchDefaults() (weightTFIDF, weightSkills float64, topK int) {
	weightTFIDF = s.cfg.WeightTFIDF
	weightSkills = s.cfg.WeightSkills
	if weightTFIDF == 0 && weightSkills == 0 {
		weightTFIDF = recommender.DefaultWeightTFIDF
		weightSkills = recommender.DefaultWeightSkills
	}
	topK = s.cfg.TopK
	if topK == 0 {
		topK = recommender.DefaultTopK
	}
	return weightTFIDF, weightSkills, topK
}

// resolveResumeText returns the inline resume text, falling back to the
// referenced user's stored resume.
func (s *Server) resolveResumeText(ctx context.Context, req *MatchRequest) (string, error) {
	if req.ResumeText != "" {
		return req.ResumeText, nil
	}
	if req.UserID == "" {
		return "", &ErrInput{Message: "resume_text is required when no user_id is given"}
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return "", &ErrInput{Message: "invalid user_id"}
	}
	user, err := s.db.GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", &ErrUserNotFound{UserID: userID}
	}
	if user.ResumeText == nil || *user.ResumeText == "" {
		return "", &ErrInput{Message: "referenced user has no stored resume"}
	}
	return *user.ResumeText, nil
}
