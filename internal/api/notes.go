package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/timestamppb"
)

const (
	NotesService_List_FullMethodName   = "/gophnotes.v1.NotesService/List"
	NotesService_Insert_FullMethodName = "/gophnotes.v1.NotesService/Insert"
	NotesService_Update_FullMethodName = "/gophnotes.v1.NotesService/Update"
	NotesService_Delete_FullMethodName = "/gophnotes.v1.NotesService/Delete"
)

// Note is one row of the notes table.
type Note struct {
	Id        string                 `json:"id"`
	UserId    string                 `json:"user_id"`
	Title     string                 `json:"title"`
	Content   string                 `json:"content"`
	CreatedAt *timestamppb.Timestamp `json:"created_at"`
	UpdatedAt *timestamppb.Timestamp `json:"updated_at"`
}

// ListNotesRequest selects the rows whose user_id equals UserId, newest
// update first.
type ListNotesRequest struct {
	UserId string `json:"user_id"`
}

type ListNotesResponse struct {
	Notes []*Note `json:"notes"`
}

type InsertNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	UserId  string `json:"user_id"`
}

type UpdateNoteRequest struct {
	Id      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NoteResponse carries the row as stored after Insert or Update.
type NoteResponse struct {
	Note *Note `json:"note"`
}

func (x *NoteResponse) GetNote() *Note {
	if x == nil {
		return nil
	}
	return x.Note
}

type DeleteNoteRequest struct {
	Id string `json:"id"`
}

type DeleteNoteResponse struct{}

type NotesServiceClient interface {
	List(ctx context.Context, in *ListNotesRequest, opts ...grpc.CallOption) (*ListNotesResponse, error)
	Insert(ctx context.Context, in *InsertNoteRequest, opts ...grpc.CallOption) (*NoteResponse, error)
	Update(ctx context.Context, in *UpdateNoteRequest, opts ...grpc.CallOption) (*NoteResponse, error)
	Delete(ctx context.Context, in *DeleteNoteRequest, opts ...grpc.CallOption) (*DeleteNoteResponse, error)
}

type notesServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewNotesServiceClient(cc grpc.ClientConnInterface) NotesServiceClient {
	return &notesServiceClient{cc: cc}
}

func (c *notesServiceClient) List(ctx context.Context, in *ListNotesRequest, opts ...grpc.CallOption) (*ListNotesResponse, error) {
	return invoke[ListNotesResponse](ctx, c.cc, NotesService_List_FullMethodName, in, opts)
}

func (c *notesServiceClient) Insert(ctx context.Context, in *InsertNoteRequest, opts ...grpc.CallOption) (*NoteResponse, error) {
	return invoke[NoteResponse](ctx, c.cc, NotesService_Insert_FullMethodName, in, opts)
}

func (c *notesServiceClient) Update(ctx context.Context, in *UpdateNoteRequest, opts ...grpc.CallOption) (*NoteResponse, error) {
	return invoke[NoteResponse](ctx, c.cc, NotesService_Update_FullMethodName, in, opts)
}

func (c *notesServiceClient) Delete(ctx context.Context, in *DeleteNoteRequest, opts ...grpc.CallOption) (*DeleteNoteResponse, error) {
	return invoke[DeleteNoteResponse](ctx, c.cc, NotesService_Delete_FullMethodName, in, opts)
}

type NotesServiceServer interface {
	List(context.Context, *ListNotesRequest) (*ListNotesResponse, error)
	Insert(context.Context, *InsertNoteRequest) (*NoteResponse, error)
	Update(context.Context, *UpdateNoteRequest) (*NoteResponse, error)
	Delete(context.Context, *DeleteNoteRequest) (*DeleteNoteResponse, error)
}

var NotesService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "gophnotes.v1.NotesService",
	HandlerType: (*NotesServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "List", Handler: unary(NotesService_List_FullMethodName, NotesServiceServer.List)},
		{MethodName: "Insert", Handler: unary(NotesService_Insert_FullMethodName, NotesServiceServer.Insert)},
		{MethodName: "Update", Handler: unary(NotesService_Update_FullMethodName, NotesServiceServer.Update)},
		{MethodName: "Delete", Handler: unary(NotesService_Delete_FullMethodName, NotesServiceServer.Delete)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gophnotes/v1/notes",
}

func RegisterNotesServiceServer(s grpc.ServiceRegistrar, srv NotesServiceServer) {
	s.RegisterService(&NotesService_ServiceDesc, srv)
}
