// Package controller exposes the file hierarchy manager over HTTP.
package controller

import (
	"encoding/base64"
	"net/http"
	"strconv"

	"github.com/Laisky/errors/v2"
	gmw "github.com/Laisky/gin-middlewares/v7"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Laisky/laisky-files-manager/internal/web/auth"
	"github.com/Laisky/laisky-files-manager/internal/web/files/dto"
	"github.com/Laisky/laisky-files-manager/internal/web/files/model"
	"github.com/Laisky/laisky-files-manager/internal/web/files/service"
)

// Files controller type
type Files struct {
	logger logSDK.Logger
	svc    *service.Hierarchy
}

// New create new controller
func New(logger logSDK.Logger, svc *service.Hierarchy) *Files {
	return &Files{
		logger: logger,
		svc:    svc,
	}
}

type uploadRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	ParentID any    `json:"parentId"`
	IsPublic bool   `json:"isPublic"`
	// Data payload bytes, base64-encoded; absent for folders
	Data string `json:"data"`
}

// parseParentID accepts the wire forms of a parent reference: absent, 0,
// "0" or "" for root, otherwise a hex record id.
func parseParentID(v any) (primitive.ObjectID, bool) {
	switch val := v.(type) {
	case nil:
		return primitive.NilObjectID, true
	case float64:
		if val == 0 {
			return primitive.NilObjectID, true
		}
	case string:
		if val == "" || val == "0" {
			return primitive.NilObjectID, true
		}
		if oid, err := primitive.ObjectIDFromHex(val); err == nil {
			return oid, true
		}
	}

	return primitive.NilObjectID, false
}

// PostUpload creates a folder or commits a payload and its metadata.
//
// POST /files
func (c *Files) PostUpload(ctx *gin.Context) {
	uid := auth.CurrentUser(ctx)

	req := new(uploadRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing name"})
		return
	}

	parentID, ok := parseParentID(req.ParentID)
	if !ok {
		// an unparseable parent reference cannot point at an existing folder
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Parent not found"})
		return
	}

	var data []byte
	if req.Data != "" {
		var err error
		if data, err = base64.StdEncoding.DecodeString(req.Data); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing data"})
			return
		}
	}

	file, err := c.svc.Create(ctx.Request.Context(), uid, service.CreateRequest{
		Name:     req.Name,
		Type:     model.Type(req.Type),
		ParentID: parentID,
		IsPublic: req.IsPublic,
		Data:     data,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingName):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing name"})
		case errors.Is(err, service.ErrMissingType):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing type"})
		case errors.Is(err, service.ErrMissingData):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing data"})
		case errors.Is(err, service.ErrParentNotFound):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Parent not found"})
		case errors.Is(err, service.ErrParentNotAFolder):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Parent is not a folder"})
		default:
			gmw.GetLogger(ctx).Error("upload file", zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		}
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewFile(file))
}

// GetShow returns one of the user's records by id.
//
// GET /files/:id
func (c *Files) GetShow(ctx *gin.Context) {
	uid := auth.CurrentUser(ctx)

	fileID, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	file, err := c.svc.GetByID(ctx.Request.Context(), uid, fileID)
	if err != nil {
		if errors.Is(err, model.ErrFileNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}

		gmw.GetLogger(ctx).Error("get file", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	ctx.JSON(http.StatusOK, dto.NewFile(file))
}

// GetIndex lists one page of the user's children under parentId.
//
// GET /files?parentId=&page=
func (c *Files) GetIndex(ctx *gin.Context) {
	uid := auth.CurrentUser(ctx)

	parentID, ok := parseParentID(ctx.Query("parentId"))
	if !ok {
		// a parent that cannot exist has no children
		ctx.JSON(http.StatusOK, dto.NewFiles(nil))
		return
	}

	page, err := strconv.Atoi(ctx.Query("page"))
	if err != nil {
		page = 0
	}

	files, err := c.svc.List(ctx.Request.Context(), uid, parentID, page)
	if err != nil {
		gmw.GetLogger(ctx).Error("list files", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	ctx.JSON(http.StatusOK, dto.NewFiles(files))
}

// PutPublish makes one of the user's records public.
//
// PUT /files/:id/publish
func (c *Files) PutPublish(ctx *gin.Context) {
	c.setPublic(ctx, true)
}

// PutUnpublish makes one of the user's records private.
//
// PUT /files/:id/unpublish
func (c *Files) PutUnpublish(ctx *gin.Context) {
	c.setPublic(ctx, false)
}

func (c *Files) setPublic(ctx *gin.Context, isPublic bool) {
	uid := auth.CurrentUser(ctx)

	fileID, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	file, err := c.svc.SetPublic(ctx.Request.Context(), uid, fileID, isPublic)
	if err != nil {
		if errors.Is(err, model.ErrFileNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}

		gmw.GetLogger(ctx).Error("set file visibility", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	ctx.JSON(http.StatusOK, dto.NewFile(file))
}
