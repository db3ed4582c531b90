// Package board defines the moodboard item model and the size model that
// turns an item's semantic attributes into a concrete bounding box.
//
// # Items
//
// An [Item] is one visual entity on the board: an image cluster standing for
// an inferred interest. Its weight expresses how strong the interest is, and
// the IsSpecial flag marks "desired self" markers that are sized with a
// modest multiplier instead of the amplified interest scale.
//
// Items arrive from external sources (JSON files, HTTP bodies, storage) and
// may carry missing or garbage numeric fields. All defaulting happens once,
// in [Item.Normalized]; nothing downstream re-checks fields.
//
// # Size Model
//
// [SizeOf] maps an item to a [Size]:
//
//	special:  w = baseWidth * weight
//	          h = (baseHeight + 80) * weight
//	ordinary: w = baseWidth * weight * 10
//	          h = (baseHeight + 80) * weight * 10
//
// The x10 amplification keeps small weight differences visible. The extra 80
// pixels of height reserve room for the caption strip under each image.
package board
