package cloudflare_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	cf "github.com/cloudflare/cloudflare-go"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stegavault/stegavault/internal/domain"
	"github.com/stegavault/stegavault/internal/downloader"
	"github.com/stegavault/stegavault/internal/logger"
	mediaprovider "github.com/stegavault/stegavault/internal/media/provider"
	"github.com/stegavault/stegavault/internal/mocks"
	"github.com/stegavault/stegavault/internal/providers/cloudflare"
)

type testCloudflareMocks struct {
	ctrl       *gomock.Controller
	client     *mocks.MockCloudflareClient
	downloader *mocks.MockDownloader
	provider   mediaprovider.Provider
}

func setupTestCloudflare(t *testing.T, variant string) *testCloudflareMocks {
	err := logger.Initialize(logger.Config{Debug: true})
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	tm := &testCloudflareMocks{
		ctrl:       ctrl,
		client:     mocks.NewMockCloudflareClient(ctrl),
		downloader: mocks.NewMockDownloader(ctrl),
	}
	tm.provider, err = cloudflare.NewMediaProvider(tm.client, &cloudflare.Config{
		AccountID: "acct",
		APIToken:  "token",
		Variant:   variant,
	}, tm.downloader)
	require.NoError(t, err)

	return tm
}

func TestNewMediaProvider_RequiresAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	_, err := cloudflare.NewMediaProvider(mocks.NewMockCloudflareClient(ctrl), &cloudflare.Config{}, mocks.NewMockDownloader(ctrl))
	assert.Error(t, err)
}

func TestMediaProvider_Store(t *testing.T) {
	t.Run("returns the configured variant", func(t *testing.T) {
		tm := setupTestCloudflare(t, "original")
		data := []byte("image bytes")

		tm.client.EXPECT().
			UploadImage(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, rc *cf.ResourceContainer, params cf.UploadImageParams) (cf.Image, error) {
				assert.Equal(t, "acct", rc.Identifier)
				assert.True(t, strings.HasSuffix(params.Name, ".png"), params.Name)
				body, err := io.ReadAll(params.File)
				require.NoError(t, err)
				assert.Equal(t, data, body)
				return cf.Image{
					ID: "img-1",
					Variants: []string{
						"https://imagedelivery.net/hash/img-1/thumbnail",
						"https://imagedelivery.net/hash/img-1/original",
					},
				}, nil
			})

		url, err := tm.provider.Store(context.Background(), data, "image/png")
		require.NoError(t, err)
		assert.Equal(t, "https://imagedelivery.net/hash/img-1/original", url)
	})

	t.Run("defaults to the public variant", func(t *testing.T) {
		tm := setupTestCloudflare(t, "")
		tm.client.EXPECT().
			UploadImage(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(cf.Image{ID: "img-2", Variants: []string{"https://imagedelivery.net/hash/img-2/public"}}, nil)

		url, err := tm.provider.Store(context.Background(), []byte("x"), "image/png")
		require.NoError(t, err)
		assert.Equal(t, "https://imagedelivery.net/hash/img-2/public", url)
	})

	t.Run("variant missing", func(t *testing.T) {
		tm := setupTestCloudflare(t, "original")
		tm.client.EXPECT().
			UploadImage(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(cf.Image{ID: "img-3", Variants: []string{"https://imagedelivery.net/hash/img-3/public"}}, nil)

		_, err := tm.provider.Store(context.Background(), []byte("x"), "image/png")
		require.Error(t, err)
		assert.Equal(t, domain.KindExternalIO, domain.KindOf(err))
	})

	t.Run("upload fails", func(t *testing.T) {
		tm := setupTestCloudflare(t, "original")
		tm.client.EXPECT().
			UploadImage(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(cf.Image{}, errors.New("403 forbidden"))

		_, err := tm.provider.Store(context.Background(), []byte("x"), "image/png")
		require.Error(t, err)
		assert.Equal(t, "failed to upload image", domain.MessageOf(err))
	})
}

func TestMediaProvider_Fetch(t *testing.T) {
	tm := setupTestCloudflare(t, "original")
	tm.downloader.EXPECT().
		Download(gomock.Any(), "https://imagedelivery.net/hash/img-1/original").
		Return(&downloader.DownloadResult{Data: []byte("png")}, nil)

	data, err := tm.provider.Fetch(context.Background(), "https://imagedelivery.net/hash/img-1/original")
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), data)
	assert.Equal(t, cloudflare.CLOUDFLARE_PROVIDER_NAME, tm.provider.Name())
}

func TestMediaProvider_Delete(t *testing.T) {
	t.Run("deletes by image id", func(t *testing.T) {
		tm := setupTestCloudflare(t, "")
		tm.client.EXPECT().
			DeleteImage(gomock.Any(), gomock.Any(), "img-1").
			DoAndReturn(func(_ context.Context, rc *cf.ResourceContainer, _ string) error {
				assert.Equal(t, "acct", rc.Identifier)
				return nil
			})

		require.NoError(t, tm.provider.Delete(context.Background(), "https://imagedelivery.net/hash/img-1/public"))
	})

	t.Run("custom domain path", func(t *testing.T) {
		tm := setupTestCloudflare(t, "")
		tm.client.EXPECT().DeleteImage(gomock.Any(), gomock.Any(), "img-2").Return(nil)

		require.NoError(t, tm.provider.Delete(context.Background(), "https://art.example/cdn-cgi/imagedelivery/hash/img-2/public"))
	})

	t.Run("url without image id", func(t *testing.T) {
		tm := setupTestCloudflare(t, "")
		tm.client.EXPECT().DeleteImage(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		err := tm.provider.Delete(context.Background(), "https://imagedelivery.net/public")
		assert.Equal(t, domain.KindExternalIO, domain.KindOf(err))
	})

	t.Run("api failure", func(t *testing.T) {
		tm := setupTestCloudflare(t, "")
		tm.client.EXPECT().DeleteImage(gomock.Any(), gomock.Any(), "img-1").Return(errors.New("rate limited"))

		err := tm.provider.Delete(context.Background(), "https://imagedelivery.net/hash/img-1/public")
		assert.Equal(t, "failed to delete image", domain.MessageOf(err))
	})
}
