package bridge

import (
	"context"

	"github.com/viant/dyopen/locator"
	"github.com/viant/dyopen/schema"
	"go.uber.org/zap"
)

// prepareShareParam copies param with custom sticker paths normalized. A sticker without
// path or uri uses the first media item; a sticker that cannot be normalized is sent without a path.
func (b *Bridge) prepareShareParam(ctx context.Context, param *schema.ShareParam, media []string) (*schema.ShareParam, []*locator.Normalized) {
	if param == nil {
		return nil, nil
	}
	ret := *param
	if param.TitleObject != nil {
		title := *param.TitleObject
		title.Markers = nil
		for _, marker := range param.TitleObject.Markers {
			switch marker.Type {
			case schema.StickerHashtag, schema.StickerMention:
				title.Markers = append(title.Markers, marker)
			}
		}
		ret.TitleObject = &title
	}
	if param.StickersObject == nil {
		return &ret, nil
	}
	var owned []*locator.Normalized
	stickers := &schema.StickersObject{}
	for _, sticker := range param.StickersObject.Stickers {
		switch sticker.Type {
		case schema.StickerHashtag, schema.StickerMention:
		case schema.StickerCustom:
			source := sticker.Path
			if source == "" {
				source = sticker.URI
			}
			if source == "" && len(media) > 0 {
				source = media[0]
			}
			sticker.Path, sticker.URI = "", ""
			if source != "" {
				item, err := b.normalizer.Normalize(ctx, source)
				if err != nil {
					b.logger.Warn("custom sticker path not normalized", zap.String("path", source), zap.Error(err))
				} else {
					sticker.Path = item.Reference
					owned = append(owned, item)
				}
			}
		default:
			continue
		}
		stickers.Stickers = append(stickers.Stickers, sticker)
	}
	ret.StickersObject = stickers
	return &ret, owned
}

// extraInfo builds the iOS share extra info.
func extraInfo(microApp *schema.MicroAppInfo, param *schema.ShareParam, hashTags []string) map[string]any {
	extra := map[string]any{}
	if microApp != nil {
		extra["mpInfo"] = microApp
	}
	if info := param.ResolvedProductExtraInfo(); len(info) > 0 {
		extra["product_extra_info"] = info
	}
	if len(hashTags) > 0 {
		extra["hashtag_list"] = hashTags
	}
	if len(extra) == 0 {
		return nil
	}
	return extra
}
