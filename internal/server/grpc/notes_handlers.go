package grpc

import (
	"context"

	"github.com/dmitrijs2005/gophnotes/internal/api"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func toAPINote(n *models.Note) *api.Note {
	return &api.Note{
		Id:        n.ID,
		UserId:    n.UserID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: timestamppb.New(n.CreatedAt),
		UpdatedAt: timestamppb.New(n.UpdatedAt),
	}
}

func (s *GRPCServer) List(ctx context.Context, req *api.ListNotesRequest) (*api.ListNotesResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	notes, err := s.notes.List(ctx, userID, req.UserId)
	if err != nil {
		return nil, s.toStatus(ctx, "List", err)
	}

	out := make([]*api.Note, 0, len(notes))
	for i := range notes {
		out = append(out, toAPINote(&notes[i]))
	}
	return &api.ListNotesResponse{Notes: out}, nil
}

func (s *GRPCServer) Insert(ctx context.Context, req *api.InsertNoteRequest) (*api.NoteResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	n, err := s.notes.Insert(ctx, userID, req.UserId, req.Title, req.Content)
	if err != nil {
		return nil, s.toStatus(ctx, "Insert", err)
	}

	s.logger.Debug(ctx, "note inserted", "note_id", n.ID, "user_id", userID)
	return &api.NoteResponse{Note: toAPINote(n)}, nil
}

func (s *GRPCServer) Update(ctx context.Context, req *api.UpdateNoteRequest) (*api.NoteResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	n, err := s.notes.Update(ctx, userID, req.Id, req.Title, req.Content)
	if err != nil {
		return nil, s.toStatus(ctx, "Update", err)
	}
	return &api.NoteResponse{Note: toAPINote(n)}, nil
}

func (s *GRPCServer) Delete(ctx context.Context, req *api.DeleteNoteRequest) (*api.DeleteNoteResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.notes.Delete(ctx, userID, req.Id); err != nil {
		return nil, s.toStatus(ctx, "Delete", err)
	}
	return &api.DeleteNoteResponse{}, nil
}
