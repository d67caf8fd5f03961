package seats

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// AtomicRedisOperations handles the atomic Redis side of seat holding.
// Seat keys are scoped per showtime, so the same physical seat can be
// held independently for different screenings.
type AtomicRedisOperations struct {
	redis *redis.Client
}

func NewAtomicRedisOperations(redisClient *redis.Client) *AtomicRedisOperations {
	return &AtomicRedisOperations{redis: redisClient}
}

// Lua script for atomic seat holding - prevents race conditions
const luaAtomicSeatHold = `
-- KEYS[1] = hold_id
-- ARGV[1] = user_id
-- ARGV[2] = showtime_id
-- ARGV[3] = ttl_seconds
-- ARGV[4..N] = seat_ids

local hold_id = KEYS[1]
local user_id = ARGV[1]
local showtime_id = ARGV[2]
local ttl = tonumber(ARGV[3])

-- Check that no requested seat is already held for this showtime
for i = 4, #ARGV do
    local seat_hold_key = "seat_hold:" .. showtime_id .. ":" .. ARGV[i]
    if redis.call("EXISTS", seat_hold_key) == 1 then
        return {0, ARGV[i]}
    end
end

local hold_key = "hold:" .. hold_id
local hold_seats_key = "hold_seats:" .. hold_id
local user_holds_key = "user_holds:" .. user_id
local created_at = redis.call("TIME")[1]

redis.call("HMSET", hold_key,
    "user_id", user_id,
    "showtime_id", showtime_id,
    "seat_count", #ARGV - 3,
    "created_at", created_at
)
redis.call("EXPIRE", hold_key, ttl)

for i = 4, #ARGV do
    local seat_hold_key = "seat_hold:" .. showtime_id .. ":" .. ARGV[i]
    redis.call("SETEX", seat_hold_key, ttl, user_id .. ":" .. hold_id)
    redis.call("SADD", hold_seats_key, ARGV[i])
end
redis.call("EXPIRE", hold_seats_key, ttl)

redis.call("SADD", user_holds_key, hold_id)
redis.call("EXPIRE", user_holds_key, ttl)

return {1, "success"}
`

// Lua script for atomic seat release
const luaAtomicSeatRelease = `
-- KEYS[1] = hold_id
local hold_id = KEYS[1]

local hold_key = "hold:" .. hold_id
local hold_seats_key = "hold_seats:" .. hold_id

local hold_data = redis.call("HGETALL", hold_key)
if #hold_data == 0 then
    return {0, "hold_not_found"}
end

local user_id = nil
local showtime_id = nil
for i = 1, #hold_data, 2 do
    if hold_data[i] == "user_id" then
        user_id = hold_data[i + 1]
    elseif hold_data[i] == "showtime_id" then
        showtime_id = hold_data[i + 1]
    end
end

if not user_id or not showtime_id then
    return {0, "invalid_hold_data"}
end

local seat_ids = redis.call("SMEMBERS", hold_seats_key)
for i = 1, #seat_ids do
    redis.call("DEL", "seat_hold:" .. showtime_id .. ":" .. seat_ids[i])
end

redis.call("SREM", "user_holds:" .. user_id, hold_id)
redis.call("DEL", hold_key)
redis.call("DEL", hold_seats_key)

return {1, #seat_ids}
`

// HoldInfo is the metadata stored with an active hold.
type HoldInfo struct {
	HoldID     string
	UserID     string
	ShowtimeID string
	SeatIDs    []uuid.UUID
	TTL        time.Duration
}

// AtomicHoldSeats holds the given seats for one showtime in a single
// script execution. It fails when any seat is already held.
func (a *AtomicRedisOperations) AtomicHoldSeats(ctx context.Context, seatIDs []uuid.UUID, userID, holdID, showtimeID string, ttl time.Duration) error {
	if a.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	keys := []string{holdID}
	args := []interface{}{
		userID,
		showtimeID,
		strconv.Itoa(int(ttl.Seconds())),
	}
	for _, seatID := range seatIDs {
		args = append(args, seatID.String())
	}

	result, err := a.redis.EvalSha(ctx, luaAtomicSeatHold, keys, args...).Result()
	if err != nil {
		result, err = a.redis.Eval(ctx, luaAtomicSeatHold, keys, args...).Result()
		if err != nil {
			return fmt.Errorf("failed to execute atomic seat hold: %w", err)
		}
	}

	resultArray, ok := result.([]interface{})
	if !ok || len(resultArray) != 2 {
		return fmt.Errorf("unexpected result format from Lua script")
	}

	success, ok := resultArray[0].(int64)
	if !ok {
		return fmt.Errorf("invalid success flag in Lua script result")
	}
	if success == 0 {
		if conflictSeat, ok := resultArray[1].(string); ok {
			return fmt.Errorf("%w: %s", ErrSeatAlreadyHeld, conflictSeat)
		}
		return fmt.Errorf("failed to hold seats")
	}
	return nil
}

// AtomicReleaseHold releases every seat in a hold and removes its
// metadata. Returns the number of seats released.
func (a *AtomicRedisOperations) AtomicReleaseHold(ctx context.Context, holdID string) (int, error) {
	if a.redis == nil {
		return 0, fmt.Errorf("redis client not available")
	}

	result, err := a.redis.EvalSha(ctx, luaAtomicSeatRelease, []string{holdID}).Result()
	if err != nil {
		result, err = a.redis.Eval(ctx, luaAtomicSeatRelease, []string{holdID}).Result()
		if err != nil {
			return 0, fmt.Errorf("failed to execute atomic seat release: %w", err)
		}
	}

	resultArray, ok := result.([]interface{})
	if !ok || len(resultArray) != 2 {
		return 0, fmt.Errorf("unexpected result format from Lua script")
	}

	success, ok := resultArray[0].(int64)
	if !ok {
		return 0, fmt.Errorf("invalid success flag in Lua script result")
	}
	if success == 0 {
		if reason, ok := resultArray[1].(string); ok {
			if reason == "hold_not_found" {
				return 0, ErrHoldNotFound
			}
			return 0, fmt.Errorf("failed to release hold: %s", reason)
		}
		return 0, fmt.Errorf("failed to release hold")
	}

	releasedCount, ok := resultArray[1].(int64)
	if !ok {
		return 0, fmt.Errorf("invalid released count in Lua script result")
	}
	return int(releasedCount), nil
}

// GetHold reads a hold's metadata and seat set. Returns ErrHoldNotFound
// when the hold has expired or never existed.
func (a *AtomicRedisOperations) GetHold(ctx context.Context, holdID string) (*HoldInfo, error) {
	if a.redis == nil {
		return nil, fmt.Errorf("redis client not available")
	}

	holdKey := "hold:" + holdID
	data, err := a.redis.HGetAll(ctx, holdKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read hold: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrHoldNotFound
	}

	members, err := a.redis.SMembers(ctx, "hold_seats:"+holdID).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read held seats: %w", err)
	}

	seatIDs := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		id, err := uuid.Parse(m)
		if err != nil {
			continue
		}
		seatIDs = append(seatIDs, id)
	}

	ttl, err := a.redis.TTL(ctx, holdKey).Result()
	if err != nil {
		ttl = 0
	}

	return &HoldInfo{
		HoldID:     holdID,
		UserID:     data["user_id"],
		ShowtimeID: data["showtime_id"],
		SeatIDs:    seatIDs,
		TTL:        ttl,
	}, nil
}

// HeldSeatIDs returns which of the given seats are currently held for a
// showtime.
func (a *AtomicRedisOperations) HeldSeatIDs(ctx context.Context, showtimeID string, seatIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	if a.redis == nil || len(seatIDs) == 0 {
		return map[uuid.UUID]bool{}, nil
	}

	keys := make([]string, len(seatIDs))
	for i, id := range seatIDs {
		keys[i] = "seat_hold:" + showtimeID + ":" + id.String()
	}

	values, err := a.redis.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read seat holds: %w", err)
	}

	held := make(map[uuid.UUID]bool, len(seatIDs))
	for i, v := range values {
		if v != nil {
			held[seatIDs[i]] = true
		}
	}
	return held, nil
}

// PreloadScripts loads the Lua scripts so later calls hit EVALSHA.
func (a *AtomicRedisOperations) PreloadScripts(ctx context.Context) error {
	if a.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	if _, err := a.redis.ScriptLoad(ctx, luaAtomicSeatHold).Result(); err != nil {
		return fmt.Errorf("failed to load seat hold script: %w", err)
	}
	if _, err := a.redis.ScriptLoad(ctx, luaAtomicSeatRelease).Result(); err != nil {
		return fmt.Errorf("failed to load seat release script: %w", err)
	}
	return nil
}
