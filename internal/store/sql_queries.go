package store

const (
	createUser = `INSERT INTO users (email, name, password_hash)
    VALUES ($1, $2, $3)
    RETURNING id, email, name, password_hash, created_at;`

	findUserByEmail = `SELECT id, email, name, password_hash, created_at
    FROM users
    WHERE email = $1;`

	saveRefreshToken = `INSERT INTO refresh_tokens (token, user_id, expires_at)
    VALUES ($1, $2, $3);`

	findRefreshToken = `SELECT token, user_id, expires_at, created_at
    FROM refresh_tokens
    WHERE token = $1;`

	deleteRefreshToken = `DELETE FROM refresh_tokens
    WHERE token = $1;`

	deleteUserRefreshTokens = `DELETE FROM refresh_tokens
    WHERE user_id = $1;`

	createHabit = `INSERT INTO habits (user_id, name, description, frequency, category, color, is_active)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING id, user_id, name, description, frequency, category, color, is_active, created_at, updated_at;`

	findHabitByID = `SELECT id, user_id, name, description, frequency, category, color, is_active, created_at, updated_at
    FROM habits
    WHERE id = $1;`

	deleteHabit = `DELETE FROM habits
    WHERE id = $1;`

	createTracking = `INSERT INTO habit_tracking (habit_id, user_id, completed_at, notes, streak, day_index)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING id, habit_id, user_id, completed_at, notes, streak, created_at;`

	trackingExistsInRange = `SELECT EXISTS (
        SELECT 1 FROM habit_tracking
        WHERE habit_id = $1 AND completed_at BETWEEN $2 AND $3
    );`

	findLatestTracking = `SELECT id, habit_id, user_id, completed_at, notes, streak, created_at
    FROM habit_tracking
    WHERE habit_id = $1
    ORDER BY completed_at DESC
    LIMIT 1;`

	findTrackingByUserInRange = `SELECT id, habit_id, user_id, completed_at, notes, streak, created_at
    FROM habit_tracking
    WHERE user_id = $1 AND completed_at BETWEEN $2 AND $3;`

	countTrackingInRange = `SELECT COUNT(*)
    FROM habit_tracking
    WHERE habit_id = $1 AND completed_at BETWEEN $2 AND $3;`

	deleteTracking = `DELETE FROM habit_tracking
    WHERE id = $1 AND user_id = $2;`

	createGoal = `INSERT INTO habit_goals (habit_id, user_id, target_frequency, goal_type)
    VALUES ($1, $2, $3, $4)
    RETURNING id, habit_id, user_id, target_frequency, goal_type, created_at, updated_at;`

	findGoalsByHabit = `SELECT id, habit_id, user_id, target_frequency, goal_type, created_at, updated_at
    FROM habit_goals
    WHERE habit_id = $1
    ORDER BY created_at DESC;`

	findGoalByHabitAndType = `SELECT id, habit_id, user_id, target_frequency, goal_type, created_at, updated_at
    FROM habit_goals
    WHERE habit_id = $1 AND goal_type = $2;`

	findGoalByID = `SELECT id, habit_id, user_id, target_frequency, goal_type, created_at, updated_at
    FROM habit_goals
    WHERE id = $1;`

	updateGoal = `UPDATE habit_goals
    SET target_frequency = $1, updated_at = NOW()
    WHERE id = $2
    RETURNING id, habit_id, user_id, target_frequency, goal_type, created_at, updated_at;`

	deleteGoal = `DELETE FROM habit_goals
    WHERE id = $1;`
)
