package entities

// UploadSession tracks one in-progress chunked upload. It lives only in
// memory for the duration of the upload; an interrupted upload cannot be
// resumed and must be driven again from the start.
type UploadSession struct {
	ID          string       `json:"session_id"`
	FileName    string       `json:"file_name"`
	FileSize    int64        `json:"file_size"`
	ChunkSize   int64        `json:"chunk_size"`
	TotalChunks int          `json:"total_chunks"`
	Uploaded    map[int]bool `json:"-"`
}

// MarkUploaded records the backend's acknowledgement of one chunk.
func (s *UploadSession) MarkUploaded(index int) {
	if s.Uploaded == nil {
		s.Uploaded = make(map[int]bool)
	}
	s.Uploaded[index] = true
}

func (s *UploadSession) UploadedCount() int {
	return len(s.Uploaded)
}

func (s *UploadSession) Done() bool {
	return len(s.Uploaded) == s.TotalChunks
}
