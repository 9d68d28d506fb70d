package service

import (
	"context"
	"errors"

	"HobbyHop/internal/dto"
	"HobbyHop/internal/model"
	"HobbyHop/internal/pkg"
	"HobbyHop/internal/repository/mysql"
	"HobbyHop/internal/repository/redis"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	store    *mysql.Store
	sessions *redis.SessionRepository
	tokens   *pkg.TokenManager
}

func NewUserService(store *mysql.Store, sessions *redis.SessionRepository, tokens *pkg.TokenManager) *UserService {
	return &UserService{store: store, sessions: sessions, tokens: tokens}
}

func (s *UserService) Register(ctx context.Context, req dto.RegisterReq) (*dto.UserResp, error) {
	exists, err := s.store.Users.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: req.Username,
		Password: string(hash),
		Email:    req.Email,
	}
	// 并发注册时预检查可能都通过，以唯一索引为准
	if err = s.store.Users.Create(ctx, user); err != nil {
		if mysql.IsDuplicate(err) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return toUserResp(user), nil
}

// Login 校验密码后签发 token，并把 access token 写入 redis，后登录会顶掉之前的会话
func (s *UserService) Login(ctx context.Context, username, password string) (*pkg.Pair, error) {
	user, err := s.store.Users.FindByUsername(ctx, username)
	if mysql.IsNotFound(err) {
		return nil, ErrInvalidPassword
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidPassword
	}

	pair, err := s.tokens.GeneratePair(user.ID)
	if err != nil {
		return nil, err
	}
	if err = s.sessions.AddUserToken(ctx, user.ID, pair.AccessToken); err != nil {
		return nil, err
	}
	return pair, nil
}

func (s *UserService) Logout(ctx context.Context, userID uint64) error {
	return s.sessions.DeleteUserToken(ctx, userID)
}

// Refresh 用 refresh token 换新的一对 token，会话仍需有效
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*pkg.Pair, error) {
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, err
	}
	if _, err = s.sessions.GetUserToken(ctx, claims.UserID); err != nil {
		if errors.Is(err, redis.ErrTokenNotFound) {
			return nil, ErrSessionInvalid
		}
		return nil, err
	}

	pair, err := s.tokens.GeneratePair(claims.UserID)
	if err != nil {
		return nil, err
	}
	if err = s.sessions.AddUserToken(ctx, claims.UserID, pair.AccessToken); err != nil {
		return nil, err
	}
	return pair, nil
}

// Authenticate 校验 access token 且必须与 redis 中保存的一致，校验通过后续期
func (s *UserService) Authenticate(ctx context.Context, accessToken string) (uint64, error) {
	claims, err := s.tokens.ParseAccess(accessToken)
	if err != nil {
		return 0, err
	}
	origin, err := s.sessions.GetUserToken(ctx, claims.UserID)
	if err != nil || origin != accessToken {
		return 0, ErrSessionInvalid
	}
	if err = s.sessions.ExtendUserToken(ctx, claims.UserID); err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID uint64) (*dto.UserResp, error) {
	user, err := s.store.Users.FindByID(ctx, userID)
	if mysql.IsNotFound(err) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return toUserResp(user), nil
}

// UpdateProfile 修改简介和/或密码，必须先校验旧密码；改密码后当前会话失效
func (s *UserService) UpdateProfile(ctx context.Context, userID uint64, req dto.UpdateProfileReq) (*dto.UserResp, error) {
	user, err := s.store.Users.FindByID(ctx, userID)
	if mysql.IsNotFound(err) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)) != nil {
		return nil, ErrInvalidPassword
	}

	fields := make(map[string]any)
	if req.Info != nil {
		fields["info"] = *req.Info
		user.Info = *req.Info
	}
	if req.NewPassword != "" {
		if req.NewPassword != req.ConfirmPassword {
			return nil, ErrInvalidParam
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		fields["password"] = string(hash)
	}
	if err = s.store.Users.UpdateProfile(ctx, userID, fields); err != nil {
		return nil, err
	}

	if _, changed := fields["password"]; changed {
		if err = s.Logout(ctx, userID); err != nil {
			return nil, err
		}
	}
	return toUserResp(user), nil
}

func toUserResp(u *model.User) *dto.UserResp {
	return &dto.UserResp{ID: u.ID, Username: u.Username, Email: u.Email, Info: u.Info}
}
