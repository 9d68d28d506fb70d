package service

import (
	"context"

	"HobbyHop/internal/dto"
	"HobbyHop/internal/model"
	"HobbyHop/internal/repository/mysql"
)

type MemberService struct {
	store *mysql.Store
}

func NewMemberService(store *mysql.Store) *MemberService {
	return &MemberService{store: store}
}

// Authorize 纯函数：成员角色满足 required 时返回 nil
func Authorize(member *model.ClubMember, required model.Role) error {
	if !member.Role.Satisfies(required) {
		return ErrForbidden
	}
	return nil
}

// requireRole 先确认成员关系存在，再比较角色，两种失败必须区分开
func requireRole(ctx context.Context, st *mysql.Store, clubID, userID uint64, required model.Role) (*model.ClubMember, error) {
	member, err := findMember(ctx, st, clubID, userID)
	if err != nil {
		return nil, err
	}
	if err = Authorize(member, required); err != nil {
		return nil, err
	}
	return member, nil
}

func findMember(ctx context.Context, st *mysql.Store, clubID, userID uint64) (*model.ClubMember, error) {
	member, err := st.Members.FindByClubAndUser(ctx, clubID, userID)
	if mysql.IsNotFound(err) {
		return nil, ErrMembershipNotFound
	}
	if err != nil {
		return nil, err
	}
	return member, nil
}

func findClub(ctx context.Context, st *mysql.Store, clubID uint64) (*model.Club, error) {
	return clubOrNotFound(st.Clubs.FindByID(ctx, clubID))
}

// shareClub 事务内读社团并加共享锁，与 DeleteClub 的排他锁互斥，避免给已删除的社团写入成员或帖子
func shareClub(ctx context.Context, st *mysql.Store, clubID uint64) (*model.Club, error) {
	return clubOrNotFound(st.Clubs.FindByIDForShare(ctx, clubID))
}

func lockClub(ctx context.Context, st *mysql.Store, clubID uint64) (*model.Club, error) {
	return clubOrNotFound(st.Clubs.FindByIDForUpdate(ctx, clubID))
}

func clubOrNotFound(club *model.Club, err error) (*model.Club, error) {
	if mysql.IsNotFound(err) {
		return nil, ErrClubNotFound
	}
	if err != nil {
		return nil, err
	}
	return club, nil
}

// Join 以 MEMBER 身份加入社团；重复加入返回 ErrAlreadyMember
func (s *MemberService) Join(ctx context.Context, clubID, userID uint64) (*dto.MemberResp, error) {
	var resp dto.MemberResp
	err := s.store.Transaction(ctx, func(tx *mysql.Store) error {
		if _, err := shareClub(ctx, tx, clubID); err != nil {
			return err
		}
		member := &model.ClubMember{ClubID: clubID, UserID: userID, Role: model.RoleMember}
		inserted, err := tx.Members.Join(ctx, member)
		if err != nil {
			return err
		}
		if !inserted {
			return ErrAlreadyMember
		}
		resp = dto.NewMemberResp(member)
		return tx.Outbox.Add(ctx, model.EventMemberJoined, clubID, userID)
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *MemberService) FindByClubAndUser(ctx context.Context, clubID, userID uint64) (*model.ClubMember, error) {
	return findMember(ctx, s.store, clubID, userID)
}

func (s *MemberService) IsMember(ctx context.Context, clubID, userID uint64) (bool, error) {
	return s.store.Members.IsMember(ctx, clubID, userID)
}

// Leave 退出社团；不是成员时返回 ErrMembershipNotFound，唯一的管理员不能退出
func (s *MemberService) Leave(ctx context.Context, clubID, userID uint64) error {
	return s.store.Transaction(ctx, func(tx *mysql.Store) error {
		member, err := findMember(ctx, tx, clubID, userID)
		if err != nil {
			return err
		}
		if member.Role == model.RoleAdmin {
			// 锁住全部管理员行，两个管理员同时退出时后者会看到更新后的人数
			admins, err := tx.Members.LockByRole(ctx, clubID, model.RoleAdmin)
			if err != nil {
				return err
			}
			if len(admins) <= 1 {
				return ErrLastAdmin
			}
		}
		affected, err := tx.Members.Leave(ctx, clubID, userID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrMembershipNotFound
		}
		return tx.Outbox.Add(ctx, model.EventMemberLeft, clubID, userID)
	})
}

// ListByUser 我加入的社团
func (s *MemberService) ListByUser(ctx context.Context, userID uint64) ([]dto.MemberResp, error) {
	list, err := s.store.Members.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MemberResp, 0, len(list))
	for i := range list {
		resp = append(resp, dto.NewMemberResp(&list[i]))
	}
	return resp, nil
}

func (s *MemberService) ListByClub(ctx context.Context, clubID uint64, page dto.PageRequest) (*dto.PageResponse[dto.MemberResp], error) {
	page = page.Normalize()
	if _, err := findClub(ctx, s.store, clubID); err != nil {
		return nil, err
	}
	list, total, err := s.store.Members.ListByClub(ctx, clubID, page.Offset(), page.Size)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MemberResp, 0, len(list))
	for i := range list {
		items = append(items, dto.NewMemberResp(&list[i]))
	}
	resp := dto.NewPageResponse(page, items, total)
	return &resp, nil
}
