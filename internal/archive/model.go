package archive

// The archive database is a read-only SQLite dump produced by an external
// import job. Column names are the dump's camelCase originals, so every
// field carries an explicit column tag. Timestamps are stored as ISO-8601
// strings, which sort chronologically as text.

// Video is one archived video with its denormalized engagement counters.
type Video struct {
	ID           string   `gorm:"column:id;primaryKey" json:"id"`
	Title        string   `gorm:"column:title" json:"title"`
	Summary      string   `gorm:"column:summary" json:"summary"`
	PlayCount    int64    `gorm:"column:playCount" json:"playCount"`
	LikeCount    int64    `gorm:"column:likeCount" json:"likeCount"`
	AngerCount   int64    `gorm:"column:angerCount" json:"angerCount"`
	Duration     *float64 `gorm:"column:duration" json:"duration,omitempty"`
	CreatedAt    string   `gorm:"column:createdAt" json:"createdAt"`
	CommentCount int64    `gorm:"column:commentCount" json:"commentCount"`
}

// TableName provides the explicit table binding for GORM.
func (Video) TableName() string {
	return "videos"
}

// Comment is one archived comment. Username is denormalized at post time;
// ReplyCount is an ingestion-time snapshot and may drift from the live
// reply rows. Video is populated only for listings not scoped to a video.
type Comment struct {
	ID         string  `gorm:"column:id;primaryKey" json:"id"`
	VideoID    string  `gorm:"column:videoId" json:"videoId"`
	Content    string  `gorm:"column:content" json:"content"`
	UserID     string  `gorm:"column:userId" json:"userId"`
	Username   string  `gorm:"column:username" json:"username"`
	UserType   string  `gorm:"column:userType" json:"userType"`
	PosVotes   int64   `gorm:"column:posVotes" json:"posVotes"`
	LinkedUser *string `gorm:"column:linkedUser" json:"linkedUser,omitempty"`
	CreatedAt  string  `gorm:"column:createdAt" json:"createdAt"`
	ReplyCount int64   `gorm:"column:replyCount" json:"replyCount"`

	Video *Video `gorm:"foreignKey:VideoID;references:ID" json:"video,omitempty"`
}

// TableName provides the explicit table binding for GORM.
func (Comment) TableName() string {
	return "comments"
}

// Reply is one archived reply to a comment. LinkedUserID/LinkedUserName
// identify the user the reply is directed at, for @-mention display.
type Reply struct {
	ID             string  `gorm:"column:id;primaryKey" json:"id"`
	ReplyTo        string  `gorm:"column:replyTo" json:"replyTo"`
	UserID         string  `gorm:"column:userId" json:"userId"`
	UserName       string  `gorm:"column:userName" json:"userName"`
	Content        string  `gorm:"column:content" json:"content"`
	VoteCount      int64   `gorm:"column:voteCount" json:"voteCount"`
	LinkedUserID   *string `gorm:"column:linkedUserId" json:"linkedUserId,omitempty"`
	LinkedUserName *string `gorm:"column:linkedUserName" json:"linkedUserName,omitempty"`
	CreatedAt      string  `gorm:"column:createdAt" json:"createdAt"`
}

// TableName provides the explicit table binding for GORM.
func (Reply) TableName() string {
	return "replies"
}

// Modified is one append-only refresh marker written by the import job.
// Only the row with the highest id is ever consulted.
type Modified struct {
	ID      int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Updated string `gorm:"column:updated" json:"updated"`
}

// TableName provides the explicit table binding for GORM.
func (Modified) TableName() string {
	return "updated"
}
