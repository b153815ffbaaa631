package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/relove-market/storefront/pkg/request"
	"github.com/relove-market/storefront/pkg/response"
)

func (cl *Client) Register(c context.Context, param request.Register) error {
	err := cl.validate.Struct(param)
	if err != nil {
		return fmt.Errorf("failed validating registration with error=%w", err)
	}
	return cl.do(c, http.MethodPost, "/api/users/register", nil, param, nil)
}

// Login authenticates and stores the bearer token on the session for all
// subsequent requests.
func (cl *Client) Login(c context.Context, param request.Login) (response.Login, error) {
	err := cl.validate.Struct(param)
	if err != nil {
		return response.Login{}, fmt.Errorf("failed validating login with error=%w", err)
	}
	login := response.Login{}
	err = cl.do(c, http.MethodPost, "/api/users/login", nil, param, &login)
	if err != nil {
		return response.Login{}, err
	}
	cl.session.SetToken(login.Token, login.Email)
	return login, nil
}

// Me fetches the authenticated user's profile: identity, roles, wallet
// balance, addresses and photos.
func (cl *Client) Me(c context.Context) (response.UserProfile, error) {
	profile := response.UserProfile{}
	err := cl.do(c, http.MethodGet, "/api/users/me", nil, nil, &profile)
	if err != nil {
		return response.UserProfile{}, err
	}
	return profile, nil
}

func (cl *Client) UpgradeToSeller(c context.Context, userId int64) error {
	path := fmt.Sprintf("/api/users/%d/upgrade-to-seller", userId)
	return cl.do(c, http.MethodPost, path, nil, nil, nil)
}

func (cl *Client) AddAddress(
	c context.Context,
	userId int64,
	param request.Address,
) (response.Address, error) {
	err := cl.validate.Struct(param)
	if err != nil {
		return response.Address{}, fmt.Errorf("failed validating address with error=%w", err)
	}
	address := response.Address{}
	path := fmt.Sprintf("/api/users/%d/addresses", userId)
	err = cl.do(c, http.MethodPost, path, nil, param, &address)
	if err != nil {
		return response.Address{}, err
	}
	return address, nil
}

func (cl *Client) DeleteAddress(c context.Context, userId, addressId int64) error {
	path := fmt.Sprintf("/api/users/%d/addresses/%d", userId, addressId)
	return cl.do(c, http.MethodDelete, path, nil, nil, nil)
}

// UploadPhoto adds a photo to the user's gallery, used for virtual
// try-on person shots.
func (cl *Client) UploadPhoto(
	c context.Context,
	userId int64,
	filename string,
) (response.UserPhoto, error) {
	photo := response.UserPhoto{}
	path := fmt.Sprintf("/api/users/%d/upload-photo", userId)
	err := cl.doMultipart(c, path, "file", []string{filename}, &photo)
	if err != nil {
		return response.UserPhoto{}, err
	}
	return photo, nil
}

func (cl *Client) SelectProfilePicture(c context.Context, userId, photoId int64) error {
	path := fmt.Sprintf("/api/users/%d/select-profile-picture/%d", userId, photoId)
	return cl.do(c, http.MethodPost, path, nil, nil, nil)
}

func (cl *Client) DeletePhoto(c context.Context, userId, photoId int64) error {
	path := fmt.Sprintf("/api/users/%d/photos/%d", userId, photoId)
	return cl.do(c, http.MethodDelete, path, nil, nil, nil)
}
