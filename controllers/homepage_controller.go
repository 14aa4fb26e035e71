package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ======== API TRANG CHỦ ========
// GET /api/ — dữ liệu tĩnh cho trang chủ, luôn trả 200 kể cả khi có sự cố

type homepageFeature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type homepageResponse struct {
	AppInfo struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Version     string `json:"version"`
	} `json:"app_info"`
	Features []homepageFeature `json:"features"`
	CTA      struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		LoginURL    string `json:"login_url"`
	} `json:"cta"`
}

func buildHomepageData(withFeatures bool) homepageResponse {
	var resp homepageResponse

	resp.AppInfo.Name = "FlashAI"
	resp.AppInfo.Description = "Ứng dụng tự động tạo flashcard học tập bằng trí tuệ nhân tạo"
	resp.AppInfo.Version = "1.0.0"

	if withFeatures {
		resp.Features = []homepageFeature{
			{
				Title:       "Tạo flashcard bằng AI",
				Description: "Sinh flashcard chất lượng cao từ bất kỳ văn bản nào bằng các model AI tiên tiến",
			},
			{
				Title:       "Tự tạo flashcard",
				Description: "Tạo và quản lý flashcard của riêng bạn",
			},
			{
				Title:       "Học với lặp lại ngắt quãng",
				Description: "Học hiệu quả nhờ thuật toán lặp lại ngắt quãng đã được khoa học chứng minh",
			},
		}
	} else {
		resp.Features = []homepageFeature{}
	}

	resp.CTA.Title = "Bắt đầu ngay hôm nay"
	resp.CTA.Description = "Đăng nhập và tạo flashcard chỉ trong vài phút"
	resp.CTA.LoginURL = "/login"

	return resp
}

// Homepage không bao giờ trả 500: có sự cố thì trả dữ liệu mặc định rút gọn
func Homepage(c *gin.Context) {
	defer func() {
		if r := recover(); r != nil {
			c.JSON(http.StatusOK, buildHomepageData(false))
		}
	}()

	c.JSON(http.StatusOK, buildHomepageData(true))
}
