package service

import (
	"errors"

	"vidshare-go/internal/api/dto"
	"vidshare-go/internal/model"
	"vidshare-go/internal/repository"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotCommentOwner = errors.New("only the owner may modify this comment")
	ErrBadParent       = errors.New("parent comment does not belong to this video")
)

type CommentService struct {
	commentRepo *repository.CommentRepository
	videoRepo   *repository.VideoRepository
}

func NewCommentService(commentRepo *repository.CommentRepository, videoRepo *repository.VideoRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, videoRepo: videoRepo}
}

// Create posts a comment or, when parentId is set, a reply. Replies must
// point at a top-level comment on the same video.
func (s *CommentService) Create(ownerID, videoID int64, req *dto.CommentCreateRequest) (*dto.CommentInfo, error) {
	if _, err := s.videoRepo.GetByID(videoID); err != nil {
		return nil, ErrVideoNotFound
	}

	if req.ParentID != nil {
		parent, err := s.commentRepo.GetByID(*req.ParentID)
		if err != nil {
			return nil, ErrCommentNotFound
		}
		if parent.VideoID != videoID || parent.ParentID != nil {
			return nil, ErrBadParent
		}
	}

	comment := &model.Comment{
		OwnerID:  ownerID,
		VideoID:  videoID,
		ParentID: req.ParentID,
		Content:  req.Content,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	info := dto.NewCommentInfo(comment)
	return &info, nil
}

// ListByVideo pages through a video's top-level comments.
func (s *CommentService) ListByVideo(videoID int64, page, limit int) (*dto.CommentListData, error) {
	if _, err := s.videoRepo.GetByID(videoID); err != nil {
		return nil, ErrVideoNotFound
	}

	comments, _, err := s.commentRepo.ListByVideo(videoID, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	return commentList(comments, page, limit), nil
}

// ListReplies pages through a comment's replies, oldest first.
func (s *CommentService) ListReplies(commentID int64, page, limit int) (*dto.CommentListData, error) {
	if _, err := s.commentRepo.GetByID(commentID); err != nil {
		return nil, ErrCommentNotFound
	}

	replies, _, err := s.commentRepo.ListReplies(commentID, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	return commentList(replies, page, limit), nil
}

// ListByOwner pages through the caller's own comments, newest first.
func (s *CommentService) ListByOwner(ownerID int64, page, limit int) (*dto.CommentListData, error) {
	comments, _, err := s.commentRepo.ListByOwner(ownerID, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	return commentList(comments, page, limit), nil
}

// Update edits a comment's content. Owner only.
func (s *CommentService) Update(commentID, requesterID int64, content string) (*dto.CommentInfo, error) {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		return nil, ErrCommentNotFound
	}
	if comment.OwnerID != requesterID {
		return nil, ErrNotCommentOwner
	}

	updated, err := s.commentRepo.UpdateContent(commentID, content)
	if err != nil {
		return nil, err
	}
	info := dto.NewCommentInfo(updated)
	return &info, nil
}

// Delete removes a comment and its replies. Owner only.
func (s *CommentService) Delete(commentID, requesterID int64) error {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		return ErrCommentNotFound
	}
	if comment.OwnerID != requesterID {
		return ErrNotCommentOwner
	}
	return s.commentRepo.Delete(commentID)
}

func commentList(comments []model.Comment, page, limit int) *dto.CommentListData {
	data := &dto.CommentListData{
		Comments: make([]dto.CommentInfo, 0, len(comments)),
		Page:     page,
		Limit:    limit,
	}
	for i := range comments {
		data.Comments = append(data.Comments, dto.NewCommentInfo(&comments[i]))
	}
	return data
}
