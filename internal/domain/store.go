package domain

// Store is the Entity Store: the only component that writes entity state.
// FindByID returns (nil, nil) for an absent id; Update returns ErrNotFound.
// Ids are assigned per kind, increase monotonically and are never reused.
type Store interface {
	Users() UserRepository
	Applications() ApplicationRepository
	Documents() DocumentRepository
	Interviews() InterviewRepository
	Close() error
}
